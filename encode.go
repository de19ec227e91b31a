package codec2

// subFrame returns the i-th 10ms slice of the current input frame.
func (c *Codec2) subFrame(i int) []float64 {
	n := c.c2c.nSamp
	return c.speech[i*n : (i+1)*n]
}

// encode3200 packs: voicing x2, Wo (7), energy (5), LSPs on the fine
// uniform grid (50).
func (c *Codec2) encode3200(w *bitWriter) error {
	m := newModel()
	if err := c.analyzeSubFrame(c.subFrame(0), &m); err != nil {
		return err
	}
	w.packBool(m.voiced)

	if err := c.analyzeSubFrame(c.subFrame(1), &m); err != nil {
		return err
	}
	w.packBool(m.voiced)
	w.pack(encodeWo(&c.c2c, m.wo, woBits), woBits)

	e, lsps := speechToLsps(c.sn, c.w, LpcOrder)
	w.pack(encodeEnergy(e, energyBits), energyBits)

	idx := make([]int, LpcOrder)
	encodeLspsUniform(idx, lsps, lspFineBits)
	for i, b := range lspFineBits {
		w.pack(idx[i], uint(b))
	}
	return nil
}

// encode2400 packs: voicing x2, joint Wo/E (8), scalar LSPs (36), 2 spare.
func (c *Codec2) encode2400(w *bitWriter) error {
	m := newModel()
	if err := c.analyzeSubFrame(c.subFrame(0), &m); err != nil {
		return err
	}
	w.packBool(m.voiced)

	if err := c.analyzeSubFrame(c.subFrame(1), &m); err != nil {
		return err
	}
	w.packBool(m.voiced)

	e, lsps := speechToLsps(c.sn, c.w, LpcOrder)
	w.pack(encodeWoE(&m, e, &c.xqEnc), woeBits)
	c.packLspsScalar(w, lsps)

	w.pack(0, 2)
	return nil
}

// encode40ms handles the four subframe modes. Pitch and energy are sent for
// subframes 2 and 4, LSPs for subframe 4 only:
//
//	v1 v2 WoE(2) v3 v4 LSPs(4) WoE(4) [spare]
//
// 1400 uses the 36 bit scalar LSPs, 1200 the 27 bit coarse grid and one
// spare bit.
func (c *Codec2) encode40ms(w *bitWriter, coarse bool) error {
	m := newModel()
	for i := 0; i < 4; i++ {
		if err := c.analyzeSubFrame(c.subFrame(i), &m); err != nil {
			return err
		}
		w.packBool(m.voiced)

		switch i {
		case 1:
			e, _ := speechToLsps(c.sn, c.w, LpcOrder)
			w.pack(encodeWoE(&m, e, &c.xqEnc), woeBits)
		case 3:
			e, lsps := speechToLsps(c.sn, c.w, LpcOrder)
			if coarse {
				idx := make([]int, LpcOrder)
				encodeLspsUniform(idx, lsps, lspCoarseBits)
				for k, b := range lspCoarseBits {
					w.pack(idx[k], uint(b))
				}
			} else {
				c.packLspsScalar(w, lsps)
			}
			w.pack(encodeWoE(&m, e, &c.xqEnc), woeBits)
		}
	}
	if coarse {
		w.pack(0, 1)
	}
	return nil
}

func (c *Codec2) packLspsScalar(w *bitWriter, lsps []float64) {
	idx := make([]int, LpcOrder)
	encodeLspsScalar(idx, lsps)
	for i := range idx {
		w.pack(idx[i], lspScalarBits(i))
	}
}
