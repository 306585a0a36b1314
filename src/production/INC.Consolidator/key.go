package consolidator

// DeriveRecordID computes the storage identity of a reading. It must only
// be called with normalized values so the same physical reading yields the
// same key regardless of how its timestamp was encoded in the source file.
func DeriveRecordID(deviceID, logDate, logTime string) string {
	return deviceID + "_" + logDate + "_" + logTime
}
