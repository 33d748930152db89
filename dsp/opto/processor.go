package opto

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-opto/dsp/core"
	"github.com/cwbudde/algo-opto/dsp/effects"
	"github.com/cwbudde/algo-opto/dsp/effects/dynamics"
	"github.com/cwbudde/algo-opto/dsp/effects/spatial"
	"github.com/cwbudde/algo-opto/dsp/resample"
	"github.com/cwbudde/algo-opto/measure/level"
)

// Block is one block of stereo audio. Outputs may alias the inputs. Only
// the common prefix of all four slices is processed.
type Block struct {
	InL, InR   []float64
	OutL, OutR []float64
}

func (b Block) len() int {
	return min(len(b.InL), len(b.InR), len(b.OutL), len(b.OutR))
}

// Processor is the stereo limiter. Lane 0 carries left or mid, lane 1
// carries right or side.
type Processor struct {
	sampleRate float64
	maxBlock   int
	logger     logrus.FieldLogger

	lanes [2]*dynamics.Lane
	over  [2]*resample.Oversampler
	jfet  *effects.JFET
	clip  *effects.SoftClipper
	meter *level.Meter

	bufs      [2][]float64
	grows     int
	fallbacks int
	meters    Meters
	closed    bool
}

// New initializes a processor for sampleRate.
func New(sampleRate float64, opts ...Option) (*Processor, error) {
	cfg := defaultConfig(sampleRate)

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("opto: %w", err)
	}

	jfet, err := effects.NewJFET(cfg.jfet...)
	if err != nil {
		return nil, err
	}

	clip, err := effects.NewSoftClipper(cfg.clip...)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		sampleRate: cfg.SampleRate,
		maxBlock:   cfg.MaxBlockSize,
		logger:     cfg.logger,
		jfet:       jfet,
		clip:       clip,
		meter:      level.NewMeter(level.WithSampleRate(cfg.SampleRate)),
	}

	for i := range p.lanes {
		p.lanes[i] = dynamics.NewLane(cfg.SampleRate)

		p.over[i], err = resample.New(cfg.SampleRate, cfg.oversampling,
			resample.WithLogger(cfg.logger),
			resample.WithMaxBlockSize(cfg.MaxBlockSize),
			resample.WithScratchLimit(cfg.scratchLimit),
		)
		if err != nil {
			return nil, err
		}

		p.bufs[i] = make([]float64, cfg.MaxBlockSize)
	}

	p.Reset()

	p.logger.WithFields(logrus.Fields{
		"function":     "New",
		"sampleRate":   cfg.SampleRate,
		"maxBlockSize": cfg.MaxBlockSize,
		"oversampling": cfg.oversampling,
	}).Debug("Processor initialized")

	return p, nil
}

// Reset restores the quiescent state: envelopes 0, gains 1, filter history
// and coefficient caches cleared, meters at the floor.
func (p *Processor) Reset() {
	for i := range p.lanes {
		p.lanes[i].Reset()
		p.over[i].Reset()
	}

	p.meter.Reset()
	p.meters = Meters{OutputRMSDB: p.meter.DB(), GainReductionDB: 0}

	p.logger.WithField("function", "Processor.Reset").Debug("Processor reset")
}

// Shutdown releases the block buffers. A processor that has been shut down
// copies input to output and no longer updates its meters.
func (p *Processor) Shutdown() {
	if p.closed {
		return
	}

	p.closed = true
	p.bufs = [2][]float64{}

	p.logger.WithFields(logrus.Fields{
		"function": "Processor.Shutdown",
		"grows":    p.grows,
	}).Debug("Processor shut down")
}

// Process runs one block and returns the updated meters.
func (p *Processor) Process(b Block, params Params) Meters {
	n := b.len()
	if n == 0 {
		return p.meters
	}

	inL, inR := b.InL[:n], b.InR[:n]
	outL, outR := b.OutL[:n], b.OutR[:n]

	if p.closed {
		copy(outL, inL)
		copy(outR, inR)

		return p.meters
	}

	if params.Bypass {
		copy(outL, inL)
		copy(outR, inR)
		p.meter.Update(outL, outR)
		p.meter.SetGainReduction()
		p.meters = Meters{OutputRMSDB: p.meter.DB(), GainReductionDB: 0}

		return p.meters
	}

	p.ensureBuffers(n)
	a, s := p.bufs[0][:n], p.bufs[1][:n]

	if params.MidSide {
		p.check(spatial.EncodeBlock(a, s, inL, inR))
	} else {
		copy(a, inL)
		copy(s, inR)
	}

	laneParams := params.lane()
	lanes := [2][]float64{a, s}

	for i, lane := range p.lanes {
		lane.Configure(laneParams)
		lane.ProcessBlock(lanes[i])

		// A failed oversampling pass leaves the lane unsaturated.
		if err := p.over[i].Process(lanes[i], p.jfet); err != nil {
			p.fallbacks++
		}
	}

	if params.MidSide {
		p.check(spatial.DecodeBlock(outL, outR, a, s))
	} else {
		copy(outL, a)
		copy(outR, s)
	}

	p.clip.ProcessInPlace(outL)
	p.clip.ProcessInPlace(outR)

	p.meter.Update(outL, outR)
	p.meter.SetGainReduction(p.lanes[0].GainReductionDB(), p.lanes[1].GainReductionDB())
	p.meters = Meters{OutputRMSDB: p.meter.DB(), GainReductionDB: p.meter.GainReductionDB()}

	return p.meters
}

func (p *Processor) ensureBuffers(n int) {
	grew := false

	for i := range p.bufs {
		var g bool

		p.bufs[i], g = core.Grow(p.bufs[i], n)
		grew = grew || g
	}

	if !grew {
		return
	}

	p.grows++

	p.logger.WithFields(logrus.Fields{
		"function":     "Processor.Process",
		"samples":      n,
		"maxBlockSize": p.maxBlock,
	}).Warn("Block exceeds configured maximum, lane buffers grown")
}

func (p *Processor) check(err error) {
	if err != nil {
		p.logger.WithFields(logrus.Fields{
			"function": "Processor.Process",
			"error":    err,
		}).Error("Mid/side transform failed")
	}
}

// Meters returns the meters of the last processed block.
func (p *Processor) Meters() Meters { return p.meters }

// SampleRate returns the sample rate in Hz.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// MaxBlockSize returns the configured maximum block size.
func (p *Processor) MaxBlockSize() int { return p.maxBlock }

// Oversampling returns the saturation oversampling factor.
func (p *Processor) Oversampling() int { return p.over[0].Factor() }

// Grows returns how many times the lane buffers were grown for a block
// larger than any seen before.
func (p *Processor) Grows() int { return p.grows }

// Fallbacks returns how many lane blocks skipped saturation because the
// oversampler could not provide scratch space.
func (p *Processor) Fallbacks() int { return p.fallbacks }

// Lane returns lane i (0 or 1) for inspection.
func (p *Processor) Lane(i int) *dynamics.Lane { return p.lanes[i] }

// Oversampler returns the oversampler of lane i (0 or 1).
func (p *Processor) Oversampler(i int) *resample.Oversampler { return p.over[i] }

// Saturation returns the J-FET stage.
func (p *Processor) Saturation() *effects.JFET { return p.jfet }

// SoftClip returns the final limiter.
func (p *Processor) SoftClip() *effects.SoftClipper { return p.clip }
