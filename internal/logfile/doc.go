// Package logfile provides reading and appending of the key-value log file.
//
//   - The log is a single file holding frames one after the other, without any file header. See package encoding for
//     the layout of a frame.
//   - The Writer only ever appends to the end of the file. Bytes of complete frames are never rewritten.
//   - The Reader scans the file from the start. Fewer than four bytes after the last complete frame are a clean end of
//     the log. A frame which is only partially present or fails validation stops the scan with an error.
package logfile
