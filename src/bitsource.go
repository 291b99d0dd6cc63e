package v17

// NewByteSource returns a bit source serving the bits of data, least
// significant bit of each byte first, followed by EndOfData.
func NewByteSource(data []byte) GetBitFunc {
	var pos = 0
	return func() int {
		if pos >= len(data)*8 {
			return EndOfData
		}
		var bit = int(data[pos/8]>>(pos%8)) & 1
		pos++
		return bit
	}
}
