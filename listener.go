package zio

import (
	"fmt"
	"net"
	"os"
	"sync/atomic"
	"syscall"

	"github.com/zhihanii/zlog"
)

type Listener interface {
	net.Listener
	Fd() int
	// TryAccept accepts one pending connection, or reports WouldBlock with
	// a nil Conn when the backlog is empty.
	TryAccept() (IOResult[Conn], error)
}

// ConvertListener switches a *net.TCPListener to non-blocking accepts.
func ConvertListener(netListener net.Listener) (Listener, error) {
	if tmp, ok := netListener.(Listener); ok {
		return tmp, nil
	}
	l := new(listener)
	l.netListener = netListener
	l.addr = netListener.Addr()
	var err = l.parseFD()
	if err != nil {
		return nil, err
	}
	if err = syscall.SetNonblock(l.fd, true); err != nil {
		l.file.Close()
		return nil, errnoErr("fcntl(O_NONBLOCK)", err)
	}
	return l, nil
}

type listener struct {
	// closed marks whether fd has expired
	closed      uint32
	fd          int
	addr        net.Addr
	netListener net.Listener
	file        *os.File
}

func (l *listener) TryAccept() (IOResult[Conn], error) {
	if atomic.LoadUint32(&l.closed) != 0 {
		return IOResult[Conn]{}, net.ErrClosed
	}
	var fd int
	var sa syscall.Sockaddr
	var err error
	for {
		fd, sa, err = syscall.Accept4(l.fd, syscall.SOCK_NONBLOCK|syscall.SOCK_CLOEXEC)
		if !isInterrupted(err) {
			break
		}
	}
	if err != nil {
		return ResultOf[Conn]("accept", nil, err)
	}
	var nfd = newNetFD(fd, familyOf(sa), syscall.SOCK_STREAM)
	nfd.localAddr = l.addr
	nfd.network = l.addr.Network()
	nfd.remoteAddr = sockaddrToAddr(syscall.SOCK_STREAM, sa)
	return Completed[Conn](nfd), nil
}

// Accept implements net.Listener. An empty backlog is ErrWouldBlock.
func (l *listener) Accept() (net.Conn, error) {
	res, err := l.TryAccept()
	if err != nil {
		return nil, err
	}
	if res.IsWouldBlock() {
		return nil, ErrWouldBlock
	}
	return res.Value(), nil
}

// Close closes the duplicated descriptor and the wrapped listener. It
// will be executed only once.
func (l *listener) Close() error {
	if atomic.AddUint32(&l.closed, 1) != 1 {
		return nil
	}
	var err error
	if l.file != nil {
		if err = l.file.Close(); err != nil {
			zlog.Errorf("listener[%d] close error: %s", l.fd, err.Error())
		}
		l.file = nil
	}
	if l.netListener != nil {
		if lerr := l.netListener.Close(); lerr != nil {
			zlog.Errorf("listener %s close error: %s", l.addr, lerr.Error())
			if err == nil {
				err = lerr
			}
		} else {
			zlog.Infof("listener %s closed", l.addr)
		}
		l.netListener = nil
	}
	return err
}

func (l *listener) Addr() net.Addr {
	return l.addr
}

func (l *listener) Fd() int {
	return l.fd
}

func (l *listener) parseFD() (err error) {
	switch netListener := l.netListener.(type) {
	case *net.TCPListener:
		l.file, err = netListener.File()
	default:
		return fmt.Errorf("%w: listener type %T", ErrUnsupported, l.netListener)
	}
	if err != nil {
		return err
	}
	l.fd = int(l.file.Fd())
	return nil
}
