package catalog

// WrapCallback frames a JSON payload as a JSONP function invocation:
// WrapCallback(p, "cb") yields cb(<p>). The result is a script body for
// cross-origin script-tag consumption, not valid JSON on its own.
func WrapCallback(jsonBytes []byte, name string) []byte {
	wrapped := make([]byte, 0, len(name)+len(jsonBytes)+2)
	wrapped = append(wrapped, name...)
	wrapped = append(wrapped, '(')
	wrapped = append(wrapped, jsonBytes...)
	wrapped = append(wrapped, ')')
	return wrapped
}
