package zio

import (
	"fmt"
	"io"
	"net"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/zhihanii/zlog"
)

type FDConn interface {
	net.Conn
	Fd() int
}

// Conn is a non-blocking socket. The Try* methods never wait: they return
// WouldBlock when the socket is not ready and Completed otherwise, with
// failures reported as SystemError. Read and Write keep the net.Conn shape
// and return ErrWouldBlock instead.
type Conn interface {
	FDConn
	TryRead(p []byte) (IOResult[int], error)
	TryWrite(p []byte) (IOResult[int], error)
	TryReadv(bs [][]byte) (IOResult[int], error)
	TryWritev(bs [][]byte) (IOResult[int], error)
	SetKeepAlive(second int) error
	SetZeroCopy() error
}

type netFD struct {
	// file descriptor
	fd int
	// closed marks whether fd has expired
	closed uint32
	// Whether a zero byte read indicates EOF. This is false for a
	// message based socket connection.
	zeroReadIsEOF bool
	// zeroCopy is set once SO_ZEROCOPY is on; sendmsg then uses MSG_ZEROCOPY.
	zeroCopy   bool
	family     int    // AF_INET, AF_INET6, syscall.AF_UNIX
	sotype     int    // syscall.SOCK_STREAM, syscall.SOCK_DGRAM, syscall.SOCK_RAW
	network    string // tcp tcp6, udp, udp6, unix, unixgram, unixpacket
	localAddr  net.Addr
	remoteAddr net.Addr
}

// NewConn takes ownership of the socket fd, switches it to non-blocking
// mode and resolves its addresses.
func NewConn(fd int) (Conn, error) {
	if err := syscall.SetNonblock(fd, true); err != nil {
		return nil, errnoErr("fcntl(O_NONBLOCK)", err)
	}
	sotype, err := syscall.GetsockoptInt(fd, syscall.SOL_SOCKET, syscall.SO_TYPE)
	if err != nil {
		return nil, errnoErr("getsockopt(SO_TYPE)", err)
	}
	lsa, err := syscall.Getsockname(fd)
	if err != nil {
		return nil, errnoErr("getsockname", err)
	}
	c := newNetFD(fd, familyOf(lsa), sotype)
	c.localAddr = sockaddrToAddr(sotype, lsa)
	rsa, err := syscall.Getpeername(fd)
	switch {
	case err == nil:
		c.remoteAddr = sockaddrToAddr(sotype, rsa)
	case err != syscall.ENOTCONN:
		return nil, errnoErr("getpeername", err)
	}
	return c, nil
}

func newNetFD(fd, family, sotype int) *netFD {
	return &netFD{
		fd:            fd,
		family:        family,
		sotype:        sotype,
		network:       network(family, sotype),
		zeroReadIsEOF: sotype != syscall.SOCK_DGRAM && sotype != syscall.SOCK_RAW,
	}
}

func (c *netFD) Fd() (fd int) {
	return c.fd
}

func (c *netFD) isClosed() bool {
	return atomic.LoadUint32(&c.closed) != 0
}

// TryRead reads into p once. EOF is Completed(0).
func (c *netFD) TryRead(p []byte) (IOResult[int], error) {
	if c.isClosed() {
		return IOResult[int]{}, net.ErrClosed
	}
	if len(p) == 0 {
		return Completed(0), nil
	}
	n, err := ignoringEINTR(func() (int, error) {
		return syscall.Read(c.fd, p)
	})
	return ResultOf("read", n, err)
}

// TryWrite writes p once. A short write is Completed(n).
func (c *netFD) TryWrite(p []byte) (IOResult[int], error) {
	if c.isClosed() {
		return IOResult[int]{}, net.ErrClosed
	}
	if len(p) == 0 {
		return Completed(0), nil
	}
	n, err := ignoringEINTR(func() (int, error) {
		return syscall.Write(c.fd, p)
	})
	return ResultOf("write", n, err)
}

// TryReadv scatters one read over bs. At most barriercap slices are used.
func (c *netFD) TryReadv(bs [][]byte) (IOResult[int], error) {
	if c.isClosed() {
		return IOResult[int]{}, net.ErrClosed
	}
	b := barrierPool.Get().(*barrier)
	defer barrierPool.Put(b)
	n, err := readv(c.fd, bs, b.ivs)
	return ResultOf("readv", n, err)
}

// TryWritev gathers bs into one sendmsg. At most barriercap slices are used.
func (c *netFD) TryWritev(bs [][]byte) (IOResult[int], error) {
	if c.isClosed() {
		return IOResult[int]{}, net.ErrClosed
	}
	b := barrierPool.Get().(*barrier)
	defer barrierPool.Put(b)
	n, err := sendmsg(c.fd, bs, b.ivs, c.zeroCopy)
	return ResultOf("sendmsg", n, err)
}

// Read implements net.Conn.
func (c *netFD) Read(b []byte) (n int, err error) {
	res, err := c.TryRead(b)
	if err != nil {
		return 0, err
	}
	if res.IsWouldBlock() {
		return res.Value(), ErrWouldBlock
	}
	if res.Value() == 0 && len(b) > 0 && c.zeroReadIsEOF {
		return 0, io.EOF
	}
	return res.Value(), nil
}

// Write implements net.Conn.
func (c *netFD) Write(b []byte) (n int, err error) {
	res, err := c.TryWrite(b)
	if err != nil {
		return 0, err
	}
	return res.Value(), res.Err()
}

// Close will be executed only once.
func (c *netFD) Close() (err error) {
	if atomic.AddUint32(&c.closed, 1) != 1 {
		return nil
	}
	if c.fd >= 0 {
		if err = errnoErr("close", syscall.Close(c.fd)); err != nil {
			zlog.Errorf("netFD[%d] close error: %s", c.fd, err.Error())
		}
	}
	return err
}

// LocalAddr implements FDConn.
func (c *netFD) LocalAddr() (addr net.Addr) {
	return c.localAddr
}

// RemoteAddr implements FDConn.
func (c *netFD) RemoteAddr() (addr net.Addr) {
	return c.remoteAddr
}

// SetKeepAlive is a no-op for anything but tcp.
func (c *netFD) SetKeepAlive(second int) error {
	if !strings.HasPrefix(c.network, "tcp") {
		return nil
	}
	if second > 0 {
		return SetKeepAlive(c.fd, second)
	}
	return nil
}

// SetZeroCopy enables MSG_ZEROCOPY for TryWritev. The kernel then reads
// the payload after sendmsg returns, so the caller must leave those bytes
// untouched until it has reaped the completion from the error queue.
func (c *netFD) SetZeroCopy() error {
	if err := SetZeroCopy(c.fd); err != nil {
		return err
	}
	c.zeroCopy = true
	return nil
}

func (c *netFD) SetDeadline(t time.Time) error {
	return fmt.Errorf("%w: SetDeadline", ErrUnsupported)
}

// SetReadDeadline implements FDConn.
func (c *netFD) SetReadDeadline(t time.Time) error {
	return fmt.Errorf("%w: SetReadDeadline", ErrUnsupported)
}

// SetWriteDeadline implements FDConn.
func (c *netFD) SetWriteDeadline(t time.Time) error {
	return fmt.Errorf("%w: SetWriteDeadline", ErrUnsupported)
}

// ignoringEINTR retries fn while it is interrupted by a signal. A negative
// count from a failed call is reported as 0.
func ignoringEINTR(fn func() (int, error)) (int, error) {
	for {
		n, err := fn()
		if isInterrupted(err) {
			continue
		}
		if n < 0 {
			n = 0
		}
		return n, err
	}
}
