package zio

import "syscall"

// SetKeepAlive turns on TCP keep-alive for fd with secs as both the idle
// time and the probe interval.
func SetKeepAlive(fd, secs int) error {
	// open keep-alive
	if err := syscall.SetsockoptInt(fd, syscall.SOL_SOCKET, syscall.SO_KEEPALIVE, 1); err != nil {
		return errnoErr("setsockopt(SO_KEEPALIVE)", err)
	}
	// tcp_keepalive_intvl
	if err := syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, syscall.TCP_KEEPINTVL, secs); err != nil {
		return errnoErr("setsockopt(TCP_KEEPINTVL)", err)
	}
	// tcp_keepalive_time
	return errnoErr("setsockopt(TCP_KEEPIDLE)", syscall.SetsockoptInt(fd, syscall.IPPROTO_TCP, syscall.TCP_KEEPIDLE, secs))
}
