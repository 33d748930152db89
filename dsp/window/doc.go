// Package window provides the analysis windows used by the harmonic and
// alias measurements in measure/thd.
package window
