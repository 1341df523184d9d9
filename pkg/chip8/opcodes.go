package chip8

// exec runs one decoded instruction and reports how the program counter
// should move afterwards. Words that do not decode to a defined
// instruction execute as no-ops.
//
// Instructions that set both a register and the VF flag write VF last,
// so programs that target VF directly see the flag, not the result.
func (c *CPU) exec(op Opcode) (pcEffect, error) {
	x, y := op.X(), op.Y()

	hi, _, _, lo := op.Nibbles()
	switch hi {
	case 0x0:
		switch op {
		case 0x00E0: // cls: clear the display
			c.Display.Clear()
			return next(), nil

		case 0x00EE: // ret: return from subroutine
			if c.SP == 0 {
				return pcEffect{}, c.execErr(op, ErrStackUnderflow)
			}
			c.SP--
			return jumpTo(c.Stack[c.SP]), nil
		}
		// sys addr calls into machine code on the original hardware
		// and is ignored here, like any other word that does not
		// decode.
		return next(), nil

	case 0x1: // jp addr
		return jumpTo(op.NNN()), nil

	case 0x2: // call addr: push the return address, then jump
		if int(c.SP) >= StackSize {
			return pcEffect{}, c.execErr(op, ErrStackOverflow)
		}
		c.Stack[c.SP] = c.PC + opcodeSize
		c.SP++
		return jumpTo(op.NNN()), nil

	case 0x3: // se Vx, byte
		return skipIf(c.V[x] == op.KK()), nil

	case 0x4: // sne Vx, byte
		return skipIf(c.V[x] != op.KK()), nil

	case 0x5:
		if lo == 0x0 { // se Vx, Vy
			return skipIf(c.V[x] == c.V[y]), nil
		}
		return next(), nil

	case 0x6: // ld Vx, byte
		c.V[x] = op.KK()
		return next(), nil

	case 0x7: // add Vx, byte: no carry flag
		c.V[x] += op.KK()
		return next(), nil

	case 0x8:
		return c.execALU(lo, x, y), nil

	case 0x9:
		if lo == 0x0 { // sne Vx, Vy
			return skipIf(c.V[x] != c.V[y]), nil
		}
		return next(), nil

	case 0xA: // ld I, addr
		c.Index = op.NNN()
		return next(), nil

	case 0xB: // jp V0, addr
		return jumpTo(op.NNN() + uint16(c.V[0])), nil

	case 0xC: // rnd Vx, byte
		c.V[x] = c.randByte() & op.KK()
		return next(), nil

	case 0xD: // drw Vx, Vy, n: XOR the sprite in, VF reports collisions
		n := int(op.N())
		if err := c.checkIndex(op, n); err != nil {
			return pcEffect{}, err
		}
		sprite := c.Memory[c.Index : int(c.Index)+n]
		collision := c.Display.DrawSprite(int(c.V[x]), int(c.V[y]), sprite)
		c.V[0xF] = 0
		if collision {
			c.V[0xF] = 1
		}
		return next(), nil

	case 0xE:
		switch op.KK() {
		case 0x9E: // skp Vx
			return skipIf(c.Keypad[c.V[x]&0x0F]), nil
		case 0xA1: // sknp Vx
			return skipIf(!c.Keypad[c.V[x]&0x0F]), nil
		}
		return next(), nil

	case 0xF:
		return c.execMisc(op, x)
	}

	return next(), nil
}

// execALU runs the 8xy_ register-to-register instructions. Every
// arithmetic form writes its VF flag after the result register.
func (c *CPU) execALU(lo, x, y byte) pcEffect {
	switch lo {
	case 0x0: // ld Vx, Vy
		c.V[x] = c.V[y]

	case 0x1: // or Vx, Vy
		c.V[x] |= c.V[y]

	case 0x2: // and Vx, Vy
		c.V[x] &= c.V[y]

	case 0x3: // xor Vx, Vy
		c.V[x] ^= c.V[y]

	case 0x4: // add Vx, Vy: VF = carry
		sum := uint16(c.V[x]) + uint16(c.V[y])
		c.V[x] = byte(sum)
		if sum > 0xFF {
			c.V[0xF] = 1
		} else {
			c.V[0xF] = 0
		}

	case 0x5: // sub Vx, Vy: VF = NOT borrow
		vx, vy := c.V[x], c.V[y]
		c.V[x] = vx - vy
		if vx > vy {
			c.V[0xF] = 1
		} else {
			c.V[0xF] = 0
		}

	case 0x6: // shr Vx: VF = bit shifted out
		vx := c.V[x]
		c.V[x] = vx >> 1
		c.V[0xF] = vx & 0x1

	case 0x7: // subn Vx, Vy: Vx = Vy - Vx, VF = NOT borrow
		vx, vy := c.V[x], c.V[y]
		c.V[x] = vy - vx
		if vy > vx {
			c.V[0xF] = 1
		} else {
			c.V[0xF] = 0
		}

	case 0xE: // shl Vx: VF = bit shifted out
		vx := c.V[x]
		c.V[x] = vx << 1
		c.V[0xF] = vx >> 7
	}

	return next()
}

// execMisc runs the Fx__ instructions: timers, input wait, index
// arithmetic and the memory block transfers.
func (c *CPU) execMisc(op Opcode, x byte) (pcEffect, error) {
	switch op.KK() {
	case 0x07: // ld Vx, DT
		c.V[x] = c.DelayTimer

	case 0x0A: // ld Vx, K: halt until a key goes down
		c.Waiting = true
		c.waitRegister = x

	case 0x15: // ld DT, Vx
		c.DelayTimer = c.V[x]

	case 0x18: // ld ST, Vx
		c.SoundTimer = c.V[x]

	case 0x1E: // add I, Vx
		c.Index += uint16(c.V[x])
		if c.IndexOverflowFlag {
			if c.Index > 0x0F00 {
				c.V[0xF] = 1
			} else {
				c.V[0xF] = 0
			}
		}

	case 0x29: // ld F, Vx: point I at the glyph for Vx
		c.Index = uint16(c.V[x]) * GlyphSize

	case 0x33: // ld B, Vx: binary-coded decimal of Vx at I, I+1, I+2
		if err := c.checkIndex(op, 3); err != nil {
			return pcEffect{}, err
		}
		v := c.V[x]
		c.Memory[c.Index] = v / 100
		c.Memory[c.Index+1] = v / 10 % 10
		c.Memory[c.Index+2] = v % 10

	case 0x55: // ld [I], Vx: store V0 through Vx at I
		if err := c.checkIndex(op, int(x)+1); err != nil {
			return pcEffect{}, err
		}
		copy(c.Memory[c.Index:], c.V[:x+1])

	case 0x65: // ld Vx, [I]: load V0 through Vx from I
		if err := c.checkIndex(op, int(x)+1); err != nil {
			return pcEffect{}, err
		}
		copy(c.V[:x+1], c.Memory[c.Index:])
	}

	return next(), nil
}
