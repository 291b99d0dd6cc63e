package v17

/*--------------------------------------------------------------------------------
 *
 * Purpose:	Signal constellation maps for the V.17 transmitter.
 *
 *		One table per bit rate, indexed by the encoded symbol produced by
 *		the differential + convolutional encoder: the untouched high bits
 *		of the quotient, the two differentially encoded bits, and the
 *		redundant bit.  The differential bits select the quadrant, so a
 *		receiver that locks 90 degrees off still decodes phase changes
 *		correctly.
 *
 *		A separate four point table carries the training sequence.  Its
 *		points all have the same energy, and opposite entries are 180
 *		degree images of each other, which is what makes the ABAB segment
 *		a pure phase reversal.
 *
 *--------------------------------------------------------------------------------*/

// One point of a constellation, in the integer lattice units the tables
// are drawn in.  Both numeric back ends scale from these.
type sigPoint struct {
	re, im int16
}

// Training states A..D in order.  Rotating any entry by 90 degrees yields
// another entry, which the bridge segment relies on.
var trainingConstellation = [4]sigPoint{
	{-6, -2}, // A
	{-2, 6},  // B
	{6, 2},   // C
	{2, -6},  // D
}

// The scrambled training segment transmits the dibits in CDBA order.
var cdbaToABCD = [4]int{2, 3, 1, 0}

// Phase steps for the bridge segment, per scrambled dibit.
var dibitToStep = [4]int{1, 0, 2, 3}

// 7200 bit/s: 16 points, 3 bits/symbol.
var constellation7200 = [16]sigPoint{
	{2, 2},   // 0x00
	{2, 6},   // 0x01
	{-2, 2},  // 0x02
	{-6, 2},  // 0x03
	{-2, -2}, // 0x04
	{-2, -6}, // 0x05
	{2, -2},  // 0x06
	{6, -2},  // 0x07
	{6, 2},   // 0x08
	{6, 6},   // 0x09
	{-2, 6},  // 0x0A
	{-6, 6},  // 0x0B
	{-6, -2}, // 0x0C
	{-6, -6}, // 0x0D
	{2, -6},  // 0x0E
	{6, -6},  // 0x0F
}

// 9600 bit/s: 32 point cross, 4 bits/symbol.
var constellation9600 = [32]sigPoint{
	{2, 2},    // 0x00
	{2, 6},    // 0x01
	{-2, 2},   // 0x02
	{-6, 2},   // 0x03
	{-2, -2},  // 0x04
	{-2, -6},  // 0x05
	{2, -2},   // 0x06
	{6, -2},   // 0x07
	{2, 10},   // 0x08
	{6, 2},    // 0x09
	{-10, 2},  // 0x0A
	{-2, 6},   // 0x0B
	{-2, -10}, // 0x0C
	{-6, -2},  // 0x0D
	{10, -2},  // 0x0E
	{2, -6},   // 0x0F
	{6, 6},    // 0x10
	{6, 10},   // 0x11
	{-6, 6},   // 0x12
	{-10, 6},  // 0x13
	{-6, -6},  // 0x14
	{-6, -10}, // 0x15
	{6, -6},   // 0x16
	{10, -6},  // 0x17
	{10, 2},   // 0x18
	{10, 6},   // 0x19
	{-2, 10},  // 0x1A
	{-6, 10},  // 0x1B
	{-10, -2}, // 0x1C
	{-10, -6}, // 0x1D
	{2, -10},  // 0x1E
	{6, -10},  // 0x1F
}

// 12000 bit/s: 64 points, 5 bits/symbol.
var constellation12000 = [64]sigPoint{
	{1, 1},   // 0x00
	{1, 3},   // 0x01
	{-1, 1},  // 0x02
	{-3, 1},  // 0x03
	{-1, -1}, // 0x04
	{-1, -3}, // 0x05
	{1, -1},  // 0x06
	{3, -1},  // 0x07
	{1, 5},   // 0x08
	{1, 7},   // 0x09
	{-5, 1},  // 0x0A
	{-7, 1},  // 0x0B
	{-1, -5}, // 0x0C
	{-1, -7}, // 0x0D
	{5, -1},  // 0x0E
	{7, -1},  // 0x0F
	{3, 1},   // 0x10
	{3, 3},   // 0x11
	{-1, 3},  // 0x12
	{-3, 3},  // 0x13
	{-3, -1}, // 0x14
	{-3, -3}, // 0x15
	{1, -3},  // 0x16
	{3, -3},  // 0x17
	{3, 5},   // 0x18
	{3, 7},   // 0x19
	{-5, 3},  // 0x1A
	{-7, 3},  // 0x1B
	{-3, -5}, // 0x1C
	{-3, -7}, // 0x1D
	{5, -3},  // 0x1E
	{7, -3},  // 0x1F
	{5, 1},   // 0x20
	{5, 3},   // 0x21
	{-1, 5},  // 0x22
	{-3, 5},  // 0x23
	{-5, -1}, // 0x24
	{-5, -3}, // 0x25
	{1, -5},  // 0x26
	{3, -5},  // 0x27
	{5, 5},   // 0x28
	{5, 7},   // 0x29
	{-5, 5},  // 0x2A
	{-7, 5},  // 0x2B
	{-5, -5}, // 0x2C
	{-5, -7}, // 0x2D
	{5, -5},  // 0x2E
	{7, -5},  // 0x2F
	{7, 1},   // 0x30
	{7, 3},   // 0x31
	{-1, 7},  // 0x32
	{-3, 7},  // 0x33
	{-7, -1}, // 0x34
	{-7, -3}, // 0x35
	{1, -7},  // 0x36
	{3, -7},  // 0x37
	{7, 5},   // 0x38
	{7, 7},   // 0x39
	{-5, 7},  // 0x3A
	{-7, 7},  // 0x3B
	{-7, -5}, // 0x3C
	{-7, -7}, // 0x3D
	{5, -7},  // 0x3E
	{7, -7},  // 0x3F
}

// 14400 bit/s: 128 point cross, 6 bits/symbol.
var constellation14400 = [128]sigPoint{
	{1, 1},    // 0x00
	{1, 3},    // 0x01
	{-1, 1},   // 0x02
	{-3, 1},   // 0x03
	{-1, -1},  // 0x04
	{-1, -3},  // 0x05
	{1, -1},   // 0x06
	{3, -1},   // 0x07
	{1, 5},    // 0x08
	{1, 7},    // 0x09
	{-5, 1},   // 0x0A
	{-7, 1},   // 0x0B
	{-1, -5},  // 0x0C
	{-1, -7},  // 0x0D
	{5, -1},   // 0x0E
	{7, -1},   // 0x0F
	{1, 9},    // 0x10
	{1, 11},   // 0x11
	{-9, 1},   // 0x12
	{-11, 1},  // 0x13
	{-1, -9},  // 0x14
	{-1, -11}, // 0x15
	{9, -1},   // 0x16
	{11, -1},  // 0x17
	{3, 1},    // 0x18
	{3, 3},    // 0x19
	{-1, 3},   // 0x1A
	{-3, 3},   // 0x1B
	{-3, -1},  // 0x1C
	{-3, -3},  // 0x1D
	{1, -3},   // 0x1E
	{3, -3},   // 0x1F
	{3, 5},    // 0x20
	{3, 7},    // 0x21
	{-5, 3},   // 0x22
	{-7, 3},   // 0x23
	{-3, -5},  // 0x24
	{-3, -7},  // 0x25
	{5, -3},   // 0x26
	{7, -3},   // 0x27
	{3, 9},    // 0x28
	{3, 11},   // 0x29
	{-9, 3},   // 0x2A
	{-11, 3},  // 0x2B
	{-3, -9},  // 0x2C
	{-3, -11}, // 0x2D
	{9, -3},   // 0x2E
	{11, -3},  // 0x2F
	{5, 1},    // 0x30
	{5, 3},    // 0x31
	{-1, 5},   // 0x32
	{-3, 5},   // 0x33
	{-5, -1},  // 0x34
	{-5, -3},  // 0x35
	{1, -5},   // 0x36
	{3, -5},   // 0x37
	{5, 5},    // 0x38
	{5, 7},    // 0x39
	{-5, 5},   // 0x3A
	{-7, 5},   // 0x3B
	{-5, -5},  // 0x3C
	{-5, -7},  // 0x3D
	{5, -5},   // 0x3E
	{7, -5},   // 0x3F
	{5, 9},    // 0x40
	{5, 11},   // 0x41
	{-9, 5},   // 0x42
	{-11, 5},  // 0x43
	{-5, -9},  // 0x44
	{-5, -11}, // 0x45
	{9, -5},   // 0x46
	{11, -5},  // 0x47
	{7, 1},    // 0x48
	{7, 3},    // 0x49
	{-1, 7},   // 0x4A
	{-3, 7},   // 0x4B
	{-7, -1},  // 0x4C
	{-7, -3},  // 0x4D
	{1, -7},   // 0x4E
	{3, -7},   // 0x4F
	{7, 5},    // 0x50
	{7, 7},    // 0x51
	{-5, 7},   // 0x52
	{-7, 7},   // 0x53
	{-7, -5},  // 0x54
	{-7, -7},  // 0x55
	{5, -7},   // 0x56
	{7, -7},   // 0x57
	{7, 9},    // 0x58
	{7, 11},   // 0x59
	{-9, 7},   // 0x5A
	{-11, 7},  // 0x5B
	{-7, -9},  // 0x5C
	{-7, -11}, // 0x5D
	{9, -7},   // 0x5E
	{11, -7},  // 0x5F
	{9, 1},    // 0x60
	{9, 3},    // 0x61
	{-1, 9},   // 0x62
	{-3, 9},   // 0x63
	{-9, -1},  // 0x64
	{-9, -3},  // 0x65
	{1, -9},   // 0x66
	{3, -9},   // 0x67
	{9, 5},    // 0x68
	{9, 7},    // 0x69
	{-5, 9},   // 0x6A
	{-7, 9},   // 0x6B
	{-9, -5},  // 0x6C
	{-9, -7},  // 0x6D
	{5, -9},   // 0x6E
	{7, -9},   // 0x6F
	{11, 1},   // 0x70
	{11, 3},   // 0x71
	{-1, 11},  // 0x72
	{-3, 11},  // 0x73
	{-11, -1}, // 0x74
	{-11, -3}, // 0x75
	{1, -11},  // 0x76
	{3, -11},  // 0x77
	{11, 5},   // 0x78
	{11, 7},   // 0x79
	{-5, 11},  // 0x7A
	{-7, 11},  // 0x7B
	{-11, -5}, // 0x7C
	{-11, -7}, // 0x7D
	{5, -11},  // 0x7E
	{7, -11},  // 0x7F
}
