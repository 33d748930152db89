// Package spatial provides the stereo front end of the limiter: mid/side
// encoding ahead of the gain lanes and decoding after them.
package spatial
