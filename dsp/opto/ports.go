package opto

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-opto/dsp/effects/dynamics"
)

var (
	// ErrNotControlPort is returned when a control is written to or read
	// from an audio or meter port.
	ErrNotControlPort = errors.New("opto: not a control port")
	// ErrNotMeterPort is returned when a meter is read from a port that
	// does not carry one.
	ErrNotMeterPort = errors.New("opto: not a meter port")
)

// Port is the host-facing port index.
type Port int

const (
	PortPeakReduction Port = iota
	PortGain
	// PortMeter is the legacy gain-reduction meter. It reports the same
	// value as PortGainReductionMeter.
	PortMeter
	PortBypass
	PortMidSide
	PortRatioMode
	PortSidechainLowPassOn
	PortSidechainLowPassFreq
	PortSidechainLowPassQ
	PortSidechainHighPassOn
	PortSidechainHighPassFreq
	PortSidechainHighPassQ
	PortOutputRMS
	PortGainReductionMeter
	PortAudioInL
	PortAudioInR
	PortAudioOutL
	PortAudioOutR

	// NumPorts is the number of ports.
	NumPorts = int(PortAudioOutR) + 1
)

var portNames = [NumPorts]string{
	"peak_reduction",
	"gain",
	"meter",
	"bypass",
	"ms_mode_active",
	"ratio_mode",
	"sc_lp_on",
	"sc_lp_freq",
	"sc_lp_q",
	"sc_hp_on",
	"sc_hp_freq",
	"sc_hp_q",
	"output_rms",
	"gain_reduction_meter",
	"audio_in_l",
	"audio_in_r",
	"audio_out_l",
	"audio_out_r",
}

func (p Port) String() string {
	if p < 0 || int(p) >= NumPorts {
		return fmt.Sprintf("Port(%d)", int(p))
	}

	return portNames[p]
}

// IsControl reports whether p is an input control port.
func (p Port) IsControl() bool {
	switch p {
	case PortPeakReduction, PortGain, PortBypass, PortMidSide, PortRatioMode,
		PortSidechainLowPassOn, PortSidechainLowPassFreq, PortSidechainLowPassQ,
		PortSidechainHighPassOn, PortSidechainHighPassFreq, PortSidechainHighPassQ:
		return true
	default:
		return false
	}
}

// IsMeter reports whether p is an output meter port.
func (p Port) IsMeter() bool {
	return p == PortMeter || p == PortOutputRMS || p == PortGainReductionMeter
}

// IsAudio reports whether p is an audio port.
func (p Port) IsAudio() bool {
	return p >= PortAudioInL && p <= PortAudioOutR
}

func toggle(v float64) bool { return v > 0.5 }

func fromToggle(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// SetControl writes a host float control. Toggles switch on above 0.5 and
// the ratio mode is truncated and clamped to a valid mode.
func (p *Params) SetControl(port Port, value float64) error {
	switch port {
	case PortPeakReduction:
		p.PeakReduction = value
	case PortGain:
		p.Gain = value
	case PortBypass:
		p.Bypass = toggle(value)
	case PortMidSide:
		p.MidSide = toggle(value)
	case PortRatioMode:
		if math.IsNaN(value) {
			value = 0
		}

		value = math.Max(math.Min(value, float64(dynamics.RatioLimit)), float64(dynamics.Ratio3))
		p.RatioMode = dynamics.RatioMode(math.Trunc(value)).Clamp()
	case PortSidechainLowPassOn:
		p.SidechainLowPass.Enabled = toggle(value)
	case PortSidechainLowPassFreq:
		p.SidechainLowPass.FreqHz = value
	case PortSidechainLowPassQ:
		p.SidechainLowPass.Q = value
	case PortSidechainHighPassOn:
		p.SidechainHighPass.Enabled = toggle(value)
	case PortSidechainHighPassFreq:
		p.SidechainHighPass.FreqHz = value
	case PortSidechainHighPassQ:
		p.SidechainHighPass.Q = value
	default:
		return fmt.Errorf("%w: %s", ErrNotControlPort, port)
	}

	return nil
}

// Control reads a control back as a host float.
func (p Params) Control(port Port) (float64, error) {
	switch port {
	case PortPeakReduction:
		return p.PeakReduction, nil
	case PortGain:
		return p.Gain, nil
	case PortBypass:
		return fromToggle(p.Bypass), nil
	case PortMidSide:
		return fromToggle(p.MidSide), nil
	case PortRatioMode:
		return float64(p.RatioMode), nil
	case PortSidechainLowPassOn:
		return fromToggle(p.SidechainLowPass.Enabled), nil
	case PortSidechainLowPassFreq:
		return p.SidechainLowPass.FreqHz, nil
	case PortSidechainLowPassQ:
		return p.SidechainLowPass.Q, nil
	case PortSidechainHighPassOn:
		return fromToggle(p.SidechainHighPass.Enabled), nil
	case PortSidechainHighPassFreq:
		return p.SidechainHighPass.FreqHz, nil
	case PortSidechainHighPassQ:
		return p.SidechainHighPass.Q, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrNotControlPort, port)
	}
}

// Value reads a meter port.
func (m Meters) Value(port Port) (float64, error) {
	switch port {
	case PortMeter, PortGainReductionMeter:
		return m.GainReductionDB, nil
	case PortOutputRMS:
		return m.OutputRMSDB, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrNotMeterPort, port)
	}
}
