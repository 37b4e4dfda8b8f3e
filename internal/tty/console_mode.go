// ABOUTME: Console input-mode bit sets and geometry math used by the Windows driver
// ABOUTME: Kept free of build tags so the mode arithmetic is testable on every platform

package tty

// Console input mode flags, as defined by the Win32 console API.
const (
	enableProcessedInput       uint32 = 0x0001
	enableLineInput            uint32 = 0x0002
	enableEchoInput            uint32 = 0x0004
	enableWindowInput          uint32 = 0x0008
	enableMouseInput           uint32 = 0x0010
	enableInsertMode           uint32 = 0x0020
	enableQuickEditMode        uint32 = 0x0040
	enableExtendedFlags        uint32 = 0x0080
	enableVirtualTerminalInput uint32 = 0x0200
)

const (
	// rawConsoleBits must all be set for the console to count as raw.
	rawConsoleBits = enableExtendedFlags | enableInsertMode | enableQuickEditMode | enableVirtualTerminalInput

	// cookedConsoleBits must all be clear for the console to count as raw.
	cookedConsoleBits = enableLineInput | enableEchoInput | enableMouseInput | enableWindowInput | enableProcessedInput
)

// rawConsoleMode clears the cooked bits and sets the raw bits, leaving every
// other bit of mode untouched.
func rawConsoleMode(mode uint32) uint32 {
	return mode&^cookedConsoleBits | rawConsoleBits
}

func isRawConsoleMode(mode uint32) bool {
	return mode&cookedConsoleBits == 0 && mode&rawConsoleBits == rawConsoleBits
}

// windowSize converts the visible window rectangle of a screen buffer into a
// Size. The console API has no notion of pixels, so those stay zero.
func windowSize(left, top, right, bottom int16) Size {
	return Size{
		Width:  uint16(right - left + 1),
		Height: uint16(bottom - top + 1),
	}
}
