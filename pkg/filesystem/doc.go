// Package filesystem provides the filesystem transport used by polkadot operations.
//
// Every operation touches the disk through the FS interface so that tests can
// swap the real operating system filesystem for an in-memory one.
package filesystem
