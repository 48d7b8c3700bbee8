package matrix

// Command selects a panel operation by the number of DCLK pulses emitted
// while LE is held high. The pulse counts are a hardware contract.
type Command int

const (
	CmdDataLatch   Command = 1  // strobe shifted data into the output latches
	CmdVsync       Command = 2  // swap the panel's front/back frame buffers
	CmdWriteConfig Command = 4  // begin a configuration register write
	CmdReset       Command = 10 // reset the driver ICs
	CmdPreActive   Command = 14 // unlock configuration writes
)

// Configuration register bit fields, shifted MSB-first by sendConfig.
const (
	CfgOutputEnable uint16 = 1 << 0
	CfgPWM16        uint16 = 1 << 1
	CfgGainShift           = 2
	CfgGainMask     uint16 = 0x7 << CfgGainShift
)

// DefaultConfig enables output, 16-bit PWM mode and maximum current gain.
const DefaultConfig = CfgOutputEnable | CfgPWM16 | CfgGainMask
