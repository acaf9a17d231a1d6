package node

// Access is the software access mode of a field.
type Access string

const (
	AccessRW  Access = "rw"
	AccessR   Access = "r"
	AccessW   Access = "w"
	AccessRW1 Access = "rw1"
	AccessW1  Access = "w1"
	AccessNA  Access = "na"
)

// Valid reports whether a is a known access mode.
func (a Access) Valid() bool {
	switch a {
	case AccessRW, AccessR, AccessW, AccessRW1, AccessW1, AccessNA:
		return true
	}
	return false
}

// Readable reports whether software can read the field.
func (a Access) Readable() bool {
	return a == AccessRW || a == AccessR || a == AccessRW1
}

// Writable reports whether software can write the field.
func (a Access) Writable() bool {
	return a == AccessRW || a == AccessW || a == AccessRW1 || a == AccessW1
}

// ReadEffect is the side effect of a software read. Empty means none.
type ReadEffect string

const (
	ReadClear ReadEffect = "rclr"
	ReadSet   ReadEffect = "rset"
	ReadUser  ReadEffect = "ruser"
)

// Valid reports whether e is empty or a known read side effect.
func (e ReadEffect) Valid() bool {
	switch e {
	case "", ReadClear, ReadSet, ReadUser:
		return true
	}
	return false
}

// WriteEffect is the side effect of a software write. Empty means none.
type WriteEffect string

const (
	WriteOneSet     WriteEffect = "woset"
	WriteOneClear   WriteEffect = "woclr"
	WriteOneToggle  WriteEffect = "wot"
	WriteZeroSet    WriteEffect = "wzs"
	WriteZeroClear  WriteEffect = "wzc"
	WriteZeroToggle WriteEffect = "wzt"
	WriteClear      WriteEffect = "wclr"
	WriteSet        WriteEffect = "wset"
	WriteUser       WriteEffect = "wuser"
)

// Valid reports whether e is empty or a known write side effect.
func (e WriteEffect) Valid() bool {
	switch e {
	case "", WriteOneSet, WriteOneClear, WriteOneToggle, WriteZeroSet,
		WriteZeroClear, WriteZeroToggle, WriteClear, WriteSet, WriteUser:
		return true
	}
	return false
}
