package zio

import (
	"net"
	"syscall"
)

func sockaddrToAddr(sotype int, sa syscall.Sockaddr) net.Addr {
	switch sa := sa.(type) {
	case *syscall.SockaddrInet4:
		ip := net.IP(append([]byte(nil), sa.Addr[:]...))
		if sotype == syscall.SOCK_DGRAM {
			return &net.UDPAddr{IP: ip, Port: sa.Port}
		}
		return &net.TCPAddr{IP: ip, Port: sa.Port}
	case *syscall.SockaddrInet6:
		ip := net.IP(append([]byte(nil), sa.Addr[:]...))
		if sotype == syscall.SOCK_DGRAM {
			return &net.UDPAddr{IP: ip, Port: sa.Port}
		}
		return &net.TCPAddr{IP: ip, Port: sa.Port}
	case *syscall.SockaddrUnix:
		return &net.UnixAddr{Name: sa.Name, Net: unixNetwork(sotype)}
	}
	return nil
}

func unixNetwork(sotype int) string {
	switch sotype {
	case syscall.SOCK_DGRAM:
		return "unixgram"
	case syscall.SOCK_SEQPACKET:
		return "unixpacket"
	default:
		return "unix"
	}
}

// network names the socket the way package net does.
func network(family, sotype int) string {
	switch family {
	case syscall.AF_UNIX:
		return unixNetwork(sotype)
	case syscall.AF_INET6:
		if sotype == syscall.SOCK_DGRAM {
			return "udp6"
		}
		return "tcp6"
	default:
		if sotype == syscall.SOCK_DGRAM {
			return "udp"
		}
		return "tcp"
	}
}

func familyOf(sa syscall.Sockaddr) int {
	switch sa.(type) {
	case *syscall.SockaddrInet4:
		return syscall.AF_INET
	case *syscall.SockaddrInet6:
		return syscall.AF_INET6
	case *syscall.SockaddrUnix:
		return syscall.AF_UNIX
	}
	return syscall.AF_UNSPEC
}
