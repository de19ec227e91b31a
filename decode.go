package codec2

import (
	"fmt"
	"math"
)

// frameParams are the dequantised parameters of one frame, one entry per
// 10ms subframe.
type frameParams struct {
	models []model
	lsps   [][]float64
}

func newFrameParams(n int) frameParams {
	p := frameParams{
		models: make([]model, n),
		lsps:   make([][]float64, n),
	}
	for i := range p.models {
		p.models[i] = newModel()
		p.lsps[i] = make([]float64, LpcOrder)
	}
	return p
}

// unpackLsps reads LpcOrder indexes of the given widths.
func unpackLsps(r *bitReader, idx []int, width func(i int) uint) error {
	for i := range idx {
		v, err := r.unpack(width(i))
		if err != nil {
			return fmt.Errorf("failed to unpack LSP index %d: %w", i, err)
		}
		idx[i] = v
	}
	return nil
}

func gridWidth(b [LpcOrder]int) func(int) uint {
	return func(i int) uint { return uint(b[i]) }
}

// unpack3200 fills the second subframe of p from a 3200 bit/s frame.
func (c *Codec2) unpack3200(r *bitReader, p *frameParams) error {
	var err error
	if p.models[0].voiced, err = r.unpackBool(); err != nil {
		return err
	}
	if p.models[1].voiced, err = r.unpackBool(); err != nil {
		return err
	}

	wi, err := r.unpack(woBits)
	if err != nil {
		return fmt.Errorf("failed to unpack Wo index: %w", err)
	}
	m := &p.models[1]
	m.wo = decodeWo(&c.c2c, wi, woBits)
	m.l = int(math.Floor(math.Pi / m.wo))

	ei, err := r.unpack(energyBits)
	if err != nil {
		return fmt.Errorf("failed to unpack energy index: %w", err)
	}
	m.e = decodeEnergy(ei, energyBits)

	idx := make([]int, LpcOrder)
	if err := unpackLsps(r, idx, gridWidth(lspFineBits)); err != nil {
		return err
	}
	decodeLspsUniform(p.lsps[1], idx, lspFineBits)
	return nil
}

// unpack2400 fills the second subframe of p from a 2400 bit/s frame.
func (c *Codec2) unpack2400(r *bitReader, p *frameParams) error {
	var err error
	if p.models[0].voiced, err = r.unpackBool(); err != nil {
		return err
	}
	if p.models[1].voiced, err = r.unpackBool(); err != nil {
		return err
	}

	woe, err := r.unpack(woeBits)
	if err != nil {
		return fmt.Errorf("failed to unpack Wo/E index: %w", err)
	}
	decodeWoE(&c.c2c, &p.models[1], &c.xqDec, woe)

	idx := make([]int, LpcOrder)
	if err := unpackLsps(r, idx, lspScalarBits); err != nil {
		return err
	}
	decodeLspsScalar(p.lsps[1], idx)

	_, err = r.unpack(2)
	return err
}

// decode20ms decodes the two subframe modes: the second subframe is sent,
// the first is interpolated halfway from the previous frame.
func (c *Codec2) decode20ms(r *bitReader, speech []int16, unpack func(*bitReader, *frameParams) error) error {
	p := newFrameParams(2)
	if err := unpack(r, &p); err != nil {
		return err
	}
	checkLspOrder(p.lsps[1])
	bwExpandLsps(p.lsps[1], 50.0, 100.0)

	interpWo(&p.models[0], &c.prevModel, &p.models[1], 0.5, c.c2c.woMin)
	p.models[0].e = interpEnergy(c.prevE, p.models[1].e, 0.5)
	interpLsps(p.lsps[0], c.prevLsps, p.lsps[1], 0.5)

	c.render(speech, &p)
	return nil
}

// decode40ms decodes the four subframe modes. Subframes 2 and 4 carry pitch
// and energy; 1 and 3 are interpolated between their neighbours. LSPs are
// sent for subframe 4 and interpolated in quarters from the previous frame.
func (c *Codec2) decode40ms(r *bitReader, speech []int16, coarse bool) error {
	p := newFrameParams(4)
	ms := p.models

	var err error
	for i := 0; i < 2; i++ {
		if ms[i].voiced, err = r.unpackBool(); err != nil {
			return err
		}
	}
	woe, err := r.unpack(woeBits)
	if err != nil {
		return fmt.Errorf("failed to unpack Wo/E index: %w", err)
	}
	decodeWoE(&c.c2c, &ms[1], &c.xqDec, woe)

	for i := 2; i < 4; i++ {
		if ms[i].voiced, err = r.unpackBool(); err != nil {
			return err
		}
	}

	idx := make([]int, LpcOrder)
	if coarse {
		if err := unpackLsps(r, idx, gridWidth(lspCoarseBits)); err != nil {
			return err
		}
		decodeLspsUniform(p.lsps[3], idx, lspCoarseBits)
	} else {
		if err := unpackLsps(r, idx, lspScalarBits); err != nil {
			return err
		}
		decodeLspsScalar(p.lsps[3], idx)
	}

	if woe, err = r.unpack(woeBits); err != nil {
		return fmt.Errorf("failed to unpack Wo/E index: %w", err)
	}
	decodeWoE(&c.c2c, &ms[3], &c.xqDec, woe)

	if coarse {
		if _, err := r.unpack(1); err != nil {
			return err
		}
	}

	checkLspOrder(p.lsps[3])
	bwExpandLsps(p.lsps[3], 50.0, 100.0)

	interpWo(&ms[0], &c.prevModel, &ms[1], 0.5, c.c2c.woMin)
	ms[0].e = interpEnergy(c.prevE, ms[1].e, 0.5)
	interpWo(&ms[2], &ms[1], &ms[3], 0.5, c.c2c.woMin)
	ms[2].e = interpEnergy(ms[1].e, ms[3].e, 0.5)

	for i := 0; i < 3; i++ {
		interpLsps(p.lsps[i], c.prevLsps, p.lsps[3], 0.25*float64(i+1))
	}

	c.render(speech, &p)
	return nil
}

// render synthesises every subframe of p into speech and carries the last
// subframe over as the interpolation start of the next frame.
func (c *Codec2) render(speech []int16, p *frameParams) {
	n := c.c2c.nSamp
	ak := make([]float64, LpcOrder+1)
	aw := make([]comp, fftSize)
	for i := range p.models {
		m := &p.models[i]
		lspToLpc(p.lsps[i], ak, LpcOrder)
		c.aksToM2(ak, m, m.e, aw)
		applyLpcCorrection(m)
		c.synthesizeSubFrame(m, speech[i*n:(i+1)*n], aw, 1.0)
	}

	last := len(p.models) - 1
	c.prevModel = p.models[last]
	c.prevE = p.models[last].e
	copy(c.prevLsps, p.lsps[last])
}
