package sink

import (
	"encoding/binary"
	"errors"
	"math/bits"

	"github.com/dshills/stratagem/internal/input/key"
)

// Event types and values from linux/input-event-codes.h.
const (
	evSyn = 0x00
	evKey = 0x01

	synReport = 0

	valueRelease = 0
	valuePress   = 1
)

// uinput ioctl requests from linux/uinput.h.
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
)

const (
	// uinputMaxNameSize is UINPUT_MAX_NAME_SIZE.
	uinputMaxNameSize = 80

	// absCnt is ABS_CNT, the length of each absolute axis array.
	absCnt = 64

	// userDevSize is sizeof(struct uinput_user_dev).
	userDevSize = uinputMaxNameSize + 4*2 + 4 + 4*absCnt*4

	// longSize is sizeof(long). The input_event timestamp is two longs
	// on every Linux ABI uinput accepts.
	longSize = bits.UintSize / 8

	// eventSize is sizeof(struct input_event): 24 bytes on 64-bit, 16 on 32-bit.
	eventSize = 2*longSize + 8

	busVirtual = 0x06
)

// DefaultDeviceName is the device name used when none is configured.
const DefaultDeviceName = "stratagem-virtual-keyboard"

// ErrClosed is returned when writing to a closed device.
var ErrClosed = errors.New("injection device closed")

// encodeUserDev builds a struct uinput_user_dev for a virtual keyboard.
// Absolute axis arrays stay zeroed.
func encodeUserDev(name string) []byte {
	buf := make([]byte, userDevSize)
	if len(name) > uinputMaxNameSize-1 {
		name = name[:uinputMaxNameSize-1]
	}
	copy(buf, name)

	id := buf[uinputMaxNameSize:]
	binary.NativeEndian.PutUint16(id[0:], busVirtual)
	binary.NativeEndian.PutUint16(id[2:], 0x1) // vendor
	binary.NativeEndian.PutUint16(id[4:], 0x1) // product
	binary.NativeEndian.PutUint16(id[6:], 0x1) // version
	return buf
}

// encodeEvent builds a struct input_event for the running ABI. The kernel
// stamps the time.
func encodeEvent(typ, code uint16, value int32) []byte {
	return encodeEventLong(longSize, typ, code, value)
}

// encodeEventLong lays out input_event for a given sizeof(long).
func encodeEventLong(long int, typ, code uint16, value int32) []byte {
	off := 2 * long
	buf := make([]byte, off+8)
	binary.NativeEndian.PutUint16(buf[off:], typ)
	binary.NativeEndian.PutUint16(buf[off+2:], code)
	binary.NativeEndian.PutUint32(buf[off+4:], uint32(value))
	return buf
}

func keyEvent(code key.Code, value int32) []byte {
	return encodeEvent(evKey, uint16(code), value)
}

func syncEvent() []byte {
	return encodeEvent(evSyn, synReport, 0)
}
