package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// The console clears the password buffer read from the terminal with it;
// copies already made from the buffer are not affected.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}

// Int64Ptr returns a pointer to v. Handy for optional ids in store actions.
func Int64Ptr(v int64) *int64 {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
