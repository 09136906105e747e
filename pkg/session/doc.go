/*
Package session keeps live dialogues in memory for the network adapters.

A Manager owns one Play per session id. Runners are not safe for concurrent
use, so every access to a Play goes through Manager.WithLock, which holds the
session's own mutex for the duration of the callback.
*/
package session
