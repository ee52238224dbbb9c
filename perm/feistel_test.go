package perm

import (
	"bytes"
	"compress/gzip"
	"errors"
	"math/rand"
	"sync"
	"testing"
)

func mustNew(t testing.TB, rounds, seed, bits uint32) Feistel {
	t.Helper()
	f, err := New(rounds, seed, bits)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestMix(t *testing.T) {
	tests := []struct {
		in, out uint32
	}{
		{0, 129708002},
		{1, 274717221},
		{42, 3462145396},
		{0xdeadbeef, 1690569923},
		{0xffffffff, 1592862288},
	}
	for _, test := range tests {
		if got := Mix(test.in); got != test.out {
			t.Errorf("Mix(%#x): expected %v, got %v", test.in, test.out, got)
		}
	}
}

func TestEncryptKnownTable(t *testing.T) {
	f := mustNew(t, 4, 42, 4)
	exp := []uint32{0, 4, 10, 6, 13, 3, 14, 1, 2, 12, 8, 9, 5, 15, 11, 7}
	for i, e := range exp {
		if got := f.Encrypt(uint32(i)); got != e {
			t.Errorf("Encrypt(%v): expected %v, got %v", i, e, got)
		}
		if got := f.Decrypt(e); got != uint32(i) {
			t.Errorf("Decrypt(%v): expected %v, got %v", e, i, got)
		}
	}
}

func TestBijection(t *testing.T) {
	for bits := uint32(1); bits <= 12; bits++ {
		for rounds := uint32(0); rounds <= 7; rounds++ {
			if bits%2 == 1 && rounds%2 == 1 {
				continue
			}
			f := mustNew(t, rounds, 0x9e3779b9*bits+rounds, bits)
			seen := make([]bool, f.Size())
			for i := uint32(0); uint64(i) < f.Size(); i++ {
				e := f.Encrypt(i)
				if !f.Contains(e) {
					t.Fatalf("bits=%v rounds=%v: Encrypt(%v) = %v is outside the domain", bits, rounds, i, e)
				}
				if seen[e] {
					t.Fatalf("bits=%v rounds=%v: collision on %v", bits, rounds, e)
				}
				seen[e] = true
				if d := f.Decrypt(e); d != i {
					t.Fatalf("bits=%v rounds=%v: Decrypt(Encrypt(%v)) = %v", bits, rounds, i, d)
				}
				if d := f.Encrypt(f.Decrypt(i)); d != i {
					t.Fatalf("bits=%v rounds=%v: Encrypt(Decrypt(%v)) = %v", bits, rounds, i, d)
				}
			}
		}
	}
}

func TestZeroRoundsIsIdentity(t *testing.T) {
	for _, bits := range []uint32{1, 4, 7, 16} {
		f := mustNew(t, 0, 42, bits)
		for i := uint32(0); i < 100 && f.Contains(i); i++ {
			if f.Encrypt(i) != i || f.Decrypt(i) != i {
				t.Fatalf("bits=%v: zero rounds moved %v", bits, i)
			}
		}
	}
}

func TestFullWidth(t *testing.T) {
	f := mustNew(t, 4, 42, 32)
	if f.Size() != 1<<32 {
		t.Fatalf("expected size 2^32, got %v", f.Size())
	}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		u := r.Uint32()
		if d := f.Decrypt(f.Encrypt(u)); d != u {
			t.Fatalf("Decrypt(Encrypt(%v)) = %v", u, d)
		}
	}
}

func TestHighBitsCarried(t *testing.T) {
	f := mustNew(t, 4, 42, 8)
	// the left half absorbs bits above the domain; with an even round count
	// the transform still inverts, but the image leaves the domain
	for _, i := range []uint32{256, 1000, 0xffff} {
		e := f.Encrypt(i)
		if f.Contains(e) {
			t.Errorf("expected Encrypt(%v) outside the domain, got %v", i, e)
		}
		if d := f.Decrypt(e); d != i {
			t.Errorf("Decrypt(Encrypt(%v)) = %v", i, d)
		}
	}
}

func TestDeterminism(t *testing.T) {
	a := mustNew(t, 4, 1234, 16)
	b := mustNew(t, 4, 1234, 16)
	for i := uint32(0); i < 1<<16; i++ {
		if a.Encrypt(i) != b.Encrypt(i) {
			t.Fatalf("identical configurations disagree on %v", i)
		}
	}
}

func TestSeedSensitivity(t *testing.T) {
	for seed := uint32(0); seed < 100; seed++ {
		a := mustNew(t, 4, seed, 8)
		b := mustNew(t, 4, seed+1, 8)
		differ := false
		for i := uint32(0); i < 256 && !differ; i++ {
			differ = a.Encrypt(i) != b.Encrypt(i)
		}
		if !differ {
			t.Errorf("seeds %v and %v produced the same permutation", seed, seed+1)
		}
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		rounds, bits uint32
		field        string
	}{
		{4, 0, "bits"},
		{4, 33, "bits"},
		{4, 64, "bits"},
		{3, 5, "rounds"},
		{1, 1, "rounds"},
	}
	for _, test := range tests {
		_, err := New(test.rounds, 42, test.bits)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("rounds=%v bits=%v: expected ErrInvalidConfig, got %v", test.rounds, test.bits, err)
			continue
		}
		var ce *ConfigError
		if !errors.As(err, &ce) || ce.Field != test.field {
			t.Errorf("rounds=%v bits=%v: expected error on %q, got %v", test.rounds, test.bits, test.field, err)
		}
	}

	for _, ok := range [][2]uint32{{0, 1}, {2, 5}, {3, 4}, {4, 32}} {
		if _, err := New(ok[0], 42, ok[1]); err != nil {
			t.Errorf("rounds=%v bits=%v: unexpected error: %v", ok[0], ok[1], err)
		}
	}
}

func TestValidateGroupSize(t *testing.T) {
	for _, size := range []uint32{1, 2, 4, 16} {
		if err := ValidateGroupSize(size, 4); err != nil {
			t.Errorf("size %v: unexpected error: %v", size, err)
		}
	}
	for _, size := range []uint32{0, 3, 12, 32} {
		if err := ValidateGroupSize(size, 4); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("size %v: expected ErrInvalidConfig, got %v", size, err)
		}
	}
	if err := ValidateGroupSize(1<<31, 32); err != nil {
		t.Errorf("unexpected error for a full-width domain: %v", err)
	}
}

func TestDistribution(t *testing.T) {
	const iters = 10000
	const buckets = 16
	r := rand.New(rand.NewSource(1))
	for _, index := range []uint32{0, 1, 12345, 65535} {
		counts := make([]int, buckets)
		for i := 0; i < iters; i++ {
			f := mustNew(t, 4, r.Uint32(), 16)
			counts[f.Encrypt(index)>>12]++
		}
		// index should land in each sixteenth of the domain about
		// iters/buckets times
		for b, c := range counts {
			if (iters/buckets)/2 > c || c > (iters/buckets)*2 {
				t.Errorf("suspicious count for index %v bucket %v: expected %v-%v, got %v", index, b, (iters/buckets)/2, (iters/buckets)*2, c)
			}
		}
	}
}

func TestEntropy(t *testing.T) {
	f := mustNew(t, 4, 42, 16)
	b := make([]byte, 10000)
	for i := range b {
		b[i] = byte(f.Encrypt(uint32(i)))
	}
	var buf bytes.Buffer
	w, _ := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	w.Write(b)
	w.Close()
	if buf.Len() < len(b) {
		t.Fatalf("gzip was able to compress shuffled indices by %.2f%%! (%v total bytes)", float64(100*buf.Len())/float64(len(b)), buf.Len())
	}
}

func TestConcurrent(t *testing.T) {
	f := mustNew(t, 4, 42, 16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := uint32(0); i < 1<<16; i++ {
				if f.Decrypt(f.Encrypt(i)) != i {
					t.Errorf("round trip failed for %v", i)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func FuzzRoundTrip(f *testing.F) {
	f.Add(uint32(4), uint32(42), uint32(4), uint32(7))
	f.Add(uint32(0), uint32(0), uint32(1), uint32(1))
	f.Add(uint32(6), uint32(0xdeadbeef), uint32(31), uint32(0x7fffffff))
	f.Add(uint32(3), uint32(1), uint32(32), uint32(0xffffffff))

	f.Fuzz(func(t *testing.T, rounds, seed, bits, index uint32) {
		rounds %= 16
		fp, err := New(rounds, seed, bits)
		if err != nil {
			return
		}
		index &= uint32(fp.Size() - 1)
		e := fp.Encrypt(index)
		if !fp.Contains(e) {
			t.Fatalf("Encrypt(%v) = %v is outside the domain", index, e)
		}
		if d := fp.Decrypt(e); d != index {
			t.Fatalf("Decrypt(Encrypt(%v)) = %v", index, d)
		}
	})
}

func BenchmarkFeistel(b *testing.B) {
	f, _ := New(4, 42, 32)

	b.Run("encrypt", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = f.Encrypt(uint32(i))
		}
	})

	b.Run("decrypt", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = f.Decrypt(uint32(i))
		}
	})

	b.Run("mix", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = Mix(uint32(i))
		}
	})
}
