// Package zio holds the primitives a non-blocking network runtime builds on.
//
//   - SystemError: a failed system call, its errno plus a diagnostic
//     formatted at creation ("read failed: Bad file descriptor (errno: 9)").
//   - IOResult[T]: WouldBlock(progress) or Completed(progress). Hitting
//     EAGAIN is not an error; a real failure travels as the error return.
//   - Buffer and View: caller-owned storage and zero-copy windows onto it,
//     mutated in place through ReplaceRange, FillRange and ResetRange.
//
// Conn and Listener wrap non-blocking sockets with these types. Deciding
// when to retry a WouldBlock is left to the event loop.
package zio
