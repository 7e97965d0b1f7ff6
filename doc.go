// Package sdlog persists sensor readings to files on a block storage
// device, either as human-readable CSV lines or as compact fixed-layout
// binary records, optionally anchored to wall-clock time by an RTC.
//
// Example:
//
//	kit := sdlog.New()
//	kit.SetClockNow()
//
//	if !kit.Begin(10, "MYLOG", false) {
//	    log.Fatal("no log file")
//	}
//
//	kit.BinaryWriteAcceleration(1, sdlog.Acceleration{
//	    Timestamp: 12345,
//	    X: 1.5, Y: -2.25, Z: 0,
//	})
package sdlog
