package mavlink

// crcInit is the X.25 seed used by every MAVLink checksum.
const crcInit uint16 = 0xFFFF

// Accumulate folds one byte into a running X.25 (MCRF4XX) checksum.
func Accumulate(crc uint16, b byte) uint16 {
	tmp := b ^ byte(crc)
	tmp ^= tmp << 4
	t := uint16(tmp)
	return crc>>8 ^ t<<8 ^ t<<3 ^ t>>4
}

// Checksum runs Accumulate over data starting from the X.25 seed.
func Checksum(data []byte) uint16 {
	crc := crcInit
	for _, b := range data {
		crc = Accumulate(crc, b)
	}
	return crc
}

// Signature builds the CRC-EXTRA input for a message: the name followed by
// "type name " for every base field in the given order, with array fields
// appending a single byte holding the array length. Extension fields are
// skipped.
func Signature(name string, fields []*Field) []byte {
	sig := make([]byte, 0, len(name)+1+len(fields)*24)
	sig = append(sig, name...)
	sig = append(sig, ' ')
	for _, f := range fields {
		if f.Extension {
			continue
		}
		sig = append(sig, f.Type.Name()...)
		sig = append(sig, ' ')
		sig = append(sig, f.Name...)
		sig = append(sig, ' ')
		if f.IsArray() {
			// only the low byte survives the accumulator's 8-bit mask
			sig = append(sig, byte(f.ArrayLength))
		}
	}
	return sig
}

// CRCExtra computes the 8-bit CRC-EXTRA seed from a message name and its fields in wire order.
func CRCExtra(name string, fields []*Field) uint8 {
	crc := Checksum(Signature(name, fields))
	return uint8(crc&0xFF) ^ uint8(crc>>8)
}
