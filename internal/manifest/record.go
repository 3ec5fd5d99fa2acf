package manifest

import (
	"encoding/binary"
	"encoding/json"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
	"mdpuppy/internal/domain/build"
	"slices"
	"strings"
)

// Record replaces the stored fingerprints with fps and reports how they
// differ from the previous build. It runs in a single transaction.
func (s *Store) Record(fps []build.Fingerprint) (build.Changes, error) {
	var ch build.Changes
	err := s.db.Update(func(tx *bolt.Tx) error {
		prev := map[string]build.Fingerprint{}
		if b := tx.Bucket(bOutputs); b != nil {
			err := b.ForEach(func(k, v []byte) error {
				var fp build.Fingerprint
				if err := json.Unmarshal(v, &fp); err != nil {
					return err
				}
				prev[string(k)] = fp
				return nil
			})
			if err != nil {
				return err
			}
			if err := tx.DeleteBucket(bOutputs); err != nil {
				return err
			}
		}

		outB, err := tx.CreateBucket(bOutputs)
		if err != nil {
			return err
		}
		written := 0
		now := map[string]struct{}{}
		for _, fp := range fps {
			if strings.TrimSpace(fp.OutputPath) == "" {
				continue
			}
			// 同一输出路径只记录一次
			if _, dup := now[fp.OutputPath]; dup {
				continue
			}
			now[fp.OutputPath] = struct{}{}
			old, seen := prev[fp.OutputPath]
			switch {
			case !seen:
				ch.Added = append(ch.Added, fp.OutputPath)
			case old.Hash != fp.Hash:
				ch.Changed = append(ch.Changed, fp.OutputPath)
			default:
				ch.Unchanged = append(ch.Unchanged, fp.OutputPath)
			}
			delete(prev, fp.OutputPath)

			v, err := json.Marshal(fp)
			if err != nil {
				return err
			}
			if err := outB.Put([]byte(fp.OutputPath), v); err != nil {
				return err
			}
			written++
		}
		for out := range prev {
			ch.Removed = append(ch.Removed, out)
		}

		buildB, err := tx.CreateBucketIfNotExists(bBuild)
		if err != nil {
			return err
		}
		return buildB.Put(keyLastCount, encodeCount(written))
	})
	if err != nil {
		return build.Changes{}, err
	}

	slices.Sort(ch.Added)
	slices.Sort(ch.Changed)
	slices.Sort(ch.Unchanged)
	slices.Sort(ch.Removed)
	s.log.Debug("manifest recorded",
		zap.Int("added", len(ch.Added)),
		zap.Int("changed", len(ch.Changed)),
		zap.Int("removed", len(ch.Removed)),
	)
	return ch, nil
}

func (s *Store) Get(outputPath string) (build.Fingerprint, error) {
	var fp build.Fingerprint
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bOutputs)
		if b == nil {
			return ErrNotFound
		}
		v := b.Get([]byte(outputPath))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &fp)
	})
	return fp, err
}

// List returns every stored fingerprint in output path order.
func (s *Store) List() ([]build.Fingerprint, error) {
	var out []build.Fingerprint
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bOutputs)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var fp build.Fingerprint
			if err := json.Unmarshal(v, &fp); err != nil {
				return err
			}
			out = append(out, fp)
			return nil
		})
	})
	return out, err
}

// LastCount is the number of outputs the previous build recorded.
func (s *Store) LastCount() (int, error) {
	var n int
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bBuild)
		if b == nil {
			return nil
		}
		n = decodeCount(b.Get(keyLastCount))
		return nil
	})
	return n, err
}

func encodeCount(n int) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(n))
	return buf
}

func decodeCount(v []byte) int {
	if len(v) != 8 {
		return 0
	}
	return int(binary.BigEndian.Uint64(v))
}
