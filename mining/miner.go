package mining

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"math/big"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitryelj/SHA256-Benchmark/crypto/sha256"
	"github.com/dmitryelj/SHA256-Benchmark/logging"
	"github.com/dmitryelj/SHA256-Benchmark/wire"
	cmap "github.com/orcaman/concurrent-map"
	"github.com/panjf2000/ants"
)

const (
	defaultBatchSize         = 1 << 14
	defaultMidstateCacheSize = 16

	// MaxNonce is the largest value of the 32-bit nonce field.
	MaxNonce = math.MaxUint32
)

// ErrNonceSpaceExhausted is returned when no nonce in the requested range
// satisfies the target.
var ErrNonceSpaceExhausted = errors.New("nonce space exhausted")

// Config controls a Miner.
type Config struct {
	// Workers is the number of goroutines scanning nonces.
	Workers int
	// BatchSize is the number of nonces a worker claims at a time.
	BatchSize uint32
	// MidstateCacheSize bounds the number of cached header midstates.
	MidstateCacheSize int
}

// Solution is a nonce whose header hash meets the target.
type Solution struct {
	Nonce   uint32
	Hash    wire.Hash
	Hashes  uint64
	Elapsed time.Duration
}

// HashRate returns the hashes per second achieved while searching.
func (s *Solution) HashRate() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Hashes) / s.Elapsed.Seconds()
}

// Miner scans the nonce field of block headers with a fixed pool of
// workers. Each worker owns its hash contexts.
type Miner struct {
	cfg       Config
	pool      *ants.Pool
	midstates *midstateCache
	stats     cmap.ConcurrentMap
	mu        sync.Mutex // serializes Mine calls
}

// NewMiner creates a Miner. Zero fields of cfg take defaults.
func NewMiner(cfg Config) (*Miner, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = defaultBatchSize
	}
	if cfg.MidstateCacheSize <= 0 {
		cfg.MidstateCacheSize = defaultMidstateCacheSize
	}
	pool, err := ants.NewPoolPreMalloc(cfg.Workers)
	if err != nil {
		return nil, err
	}
	return &Miner{
		cfg:       cfg,
		pool:      pool,
		midstates: newMidstateCache(cfg.MidstateCacheSize),
		stats:     cmap.New(),
	}, nil
}

// Close releases the worker pool.
func (m *Miner) Close() {
	m.pool.Release()
}

// Stats returns the total number of hashes computed by each worker.
func (m *Miner) Stats() map[string]uint64 {
	stats := make(map[string]uint64)
	for k, v := range m.stats.Items() {
		stats[k] = v.(uint64)
	}
	return stats
}

func (m *Miner) addStat(worker int, hashes uint64) {
	m.stats.Upsert(strconv.Itoa(worker), hashes, func(exist bool, old interface{}, n interface{}) interface{} {
		if !exist {
			return n
		}
		return old.(uint64) + n.(uint64)
	})
}

// Mine searches nonces 0 through maxNonce for one whose header double hash
// is at most target. If target is nil the header's Bits are used. The
// header itself is not modified.
func (m *Miner) Mine(ctx context.Context, header *wire.BlockHeader, target *big.Int, maxNonce uint32) (*Solution, error) {
	if target == nil {
		target = CompactToBig(header.Bits)
	}
	if target.Sign() <= 0 {
		return nil, ErrInvalidTarget
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	raw := header.Bytes()
	mid, cached := m.midstates.get(raw[:sha256.BlockSize])
	logging.CPrint(logging.DEBUG, "start mining", logging.LogFormat{
		"workers":   m.cfg.Workers,
		"max_nonce": maxNonce,
		"target":    target.Text(16),
		"midstate":  cached,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		next     uint64 // next unclaimed nonce
		total    uint64
		once     sync.Once
		solution *Solution
		wg       sync.WaitGroup
		start    = time.Now()
		last     = uint64(maxNonce)
		batch    = uint64(m.cfg.BatchSize)
	)

	worker := func(id int) {
		defer wg.Done()
		var tail [wire.HeaderSize - sha256.BlockSize]byte
		copy(tail[:], raw[sha256.BlockSize:])
		dh := wire.NewDoubleHasher()
		var done uint64
		defer func() {
			atomic.AddUint64(&total, done)
			m.addStat(id, done)
		}()

		for ctx.Err() == nil {
			from := atomic.AddUint64(&next, batch) - batch
			if from > last {
				return
			}
			to := from + batch - 1
			if to > last {
				to = last
			}
			for n := from; n <= to; n++ {
				binary.LittleEndian.PutUint32(tail[wire.NonceOffset-sha256.BlockSize:], uint32(n))
				c := mid
				c.Update(tail[:])
				hash := dh.Rehash(c.Finalize())
				done++
				if MeetsTarget(hash, target) {
					once.Do(func() {
						solution = &Solution{Nonce: uint32(n), Hash: hash}
						cancel()
					})
					return
				}
			}
		}
	}

	for i := 0; i < m.cfg.Workers; i++ {
		wg.Add(1)
		id := i
		if err := m.pool.Submit(func() { worker(id) }); err != nil {
			wg.Done()
			cancel()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	elapsed := time.Since(start)
	if solution != nil {
		solution.Hashes = atomic.LoadUint64(&total)
		solution.Elapsed = elapsed
		logging.CPrint(logging.INFO, "found nonce", logging.LogFormat{
			"nonce":  solution.Nonce,
			"hash":   solution.Hash.String(),
			"hashes": solution.Hashes,
			"cost":   elapsed,
		})
		return solution, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logging.CPrint(logging.INFO, "nonce space exhausted", logging.LogFormat{
		"max_nonce": maxNonce,
		"hashes":    atomic.LoadUint64(&total),
		"cost":      elapsed,
	})
	return nil, ErrNonceSpaceExhausted
}
