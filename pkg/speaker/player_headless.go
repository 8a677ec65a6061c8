//go:build headless

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
	"sync"
	"time"
)

// Player paces a Source in real time without an audio device.
type Player struct {
	sampleRate int
	source     Source

	mutex   sync.Mutex
	err     error
	stop    chan struct{}
	done    chan struct{}
	started bool
}

func NewPlayer(sampleRate int) (*Player, error) {
	return &Player{sampleRate: sampleRate}, nil
}

func (p *Player) Setup(source Source) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	p.source = source
}

func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started || p.source == nil {
		return
	}

	p.started = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go p.run(p.source, p.stop, p.done)
}

func (p *Player) run(source Source, stop, done chan struct{}) {
	defer close(done)

	const slices = 100
	ticker := time.NewTicker(time.Second / slices)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		for i := 0; i < p.sampleRate/slices; i++ {
			if _, err := source.NextSample(); err != nil {
				p.mutex.Lock()
				p.err = err
				p.mutex.Unlock()
				return
			}
		}
	}
}

func (p *Player) Close() error {
	p.mutex.Lock()
	started := p.started
	p.started = false
	p.mutex.Unlock()

	if started {
		close(p.stop)
		<-p.done
	}

	return nil
}

func (p *Player) Err() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return p.err
}
