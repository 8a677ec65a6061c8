//go:build !headless

// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package speaker

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Player pulls samples from a Source on the audio device's schedule, so the
// device clock paces the source.
type Player struct {
	ctx    *oto.Context
	player *oto.Player
	source Source

	mutex   sync.Mutex
	err     error
	started bool
}

func NewPlayer(sampleRate int) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, err
	}
	<-ready

	return &Player{ctx: ctx}, nil
}

func (p *Player) Setup(source Source) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.source = source
	p.player = p.ctx.NewPlayer(p)
}

// Read renders float32 little endian mono samples. After the source fails
// the player outputs silence and Err reports the failure.
func (p *Player) Read(buf []byte) (int, error) {
	p.mutex.Lock()
	source := p.source
	failed := p.err != nil
	p.mutex.Unlock()

	count := len(buf) / 4

	for i := 0; i < count; i++ {
		var value float32

		if source != nil && !failed {
			high, err := source.NextSample()

			if err != nil {
				p.mutex.Lock()
				p.err = err
				p.mutex.Unlock()
				failed = true
			} else if high {
				value = AMPLITUDE
			}
		}

		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(value))
	}

	return count * 4, nil
}

func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

func (p *Player) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.started = false

	if p.player != nil {
		err := p.player.Close()
		p.player = nil
		return err
	}

	return nil
}

func (p *Player) Err() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.err
}
