package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coocood/freecache"
)

// DefaultMemorySize is the freecache arena size.
const DefaultMemorySize = 128 * 1024 * 1024

// freecache refuses entries over 1/1024 of the arena; chunks stay below that
// with room for the entry header and key.
const chunkOverhead = 256

// ErrValueTooLarge is returned when a value would take more than an eighth of
// the memory arena, where eviction of its own chunks becomes likely.
var ErrValueTooLarge = errors.New("value too large for memory store")

// MemoryKV is an in-process store; its contents die with the process.
// Values are split into chunks so a collection may outgrow a single
// freecache entry.
type MemoryKV struct {
	cache     *freecache.Cache
	chunkSize int
	maxValue  int
}

func NewMemoryKV(size int) *MemoryKV {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &MemoryKV{
		cache:     freecache.NewCache(size),
		chunkSize: max(size/1024-chunkOverhead, 64),
		maxValue:  size / 8,
	}
}

func (kv *MemoryKV) Get(_ context.Context, key string) (string, error) {
	header, err := kv.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("memory get %s: %w", key, err)
	}

	chunks, err := parseChunkHeader(header)
	if err != nil {
		return "", fmt.Errorf("memory get %s: %w", key, err)
	}

	var sb strings.Builder
	for i := 0; i < chunks; i++ {
		chunk, err := kv.cache.Get(chunkKey(key, i))
		if err != nil {
			return "", fmt.Errorf("memory get %s: chunk %d of %d: %w", key, i, chunks, err)
		}
		sb.Write(chunk)
	}
	return sb.String(), nil
}

func (kv *MemoryKV) Set(ctx context.Context, key, value string) error {
	if len(value) > kv.maxValue {
		return fmt.Errorf("memory set %s: %d bytes, limit %d: %w", key, len(value), kv.maxValue, ErrValueTooLarge)
	}
	if err := kv.Delete(ctx, key); err != nil {
		return err
	}

	chunks := 0
	for start := 0; start < len(value); start += kv.chunkSize {
		end := min(start+kv.chunkSize, len(value))
		if err := kv.cache.Set(chunkKey(key, chunks), []byte(value[start:end]), 0); err != nil {
			return fmt.Errorf("memory set %s: chunk %d: %w", key, chunks, err)
		}
		chunks++
	}

	// the header goes last so a reader never sees a partial value
	if err := kv.cache.Set([]byte(key), []byte(chunkHeaderPrefix+strconv.Itoa(chunks)), 0); err != nil {
		return fmt.Errorf("memory set %s: %w", key, err)
	}
	return nil
}

func (kv *MemoryKV) Delete(_ context.Context, key string) error {
	header, err := kv.cache.Get([]byte(key))
	if err == nil {
		if chunks, err := parseChunkHeader(header); err == nil {
			for i := 0; i < chunks; i++ {
				kv.cache.Del(chunkKey(key, i))
			}
		}
	}
	kv.cache.Del([]byte(key))
	return nil
}

const chunkHeaderPrefix = "chunks:"

func parseChunkHeader(header []byte) (int, error) {
	count, ok := strings.CutPrefix(string(header), chunkHeaderPrefix)
	if !ok {
		return 0, errors.New("malformed chunk header")
	}
	return strconv.Atoi(count)
}

func chunkKey(key string, i int) []byte {
	return []byte(key + "\x00chunk\x00" + strconv.Itoa(i))
}
