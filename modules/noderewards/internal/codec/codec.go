// Package codec renders registry contents in the delimited format consumed by existing
// callers: fields joined by "#", records joined by "-". An empty collection renders as "".
package codec

import (
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/node-rewards/common/errs"
	"github.com/gaze-network/node-rewards/modules/noderewards/internal/entity"
	"github.com/gaze-network/uint128"
)

func join[T any](seq iter.Seq[T], record func(T) []string) string {
	var sb strings.Builder
	first := true
	for item := range seq {
		if !first {
			sb.WriteString(entity.RecordSeparator)
		}
		first = false
		sb.WriteString(strings.Join(record(item), entity.FieldSeparator))
	}
	return sb.String()
}

func seconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10)
}

// NodeTypes renders name#price#claimSeconds#rewardRate#tax#nextTier#levelUpCount records.
func NodeTypes(types iter.Seq[entity.NodeType]) string {
	return join(types, func(t entity.NodeType) []string {
		return []string{
			t.Name,
			t.Price.String(),
			seconds(t.ClaimInterval),
			t.RewardRate.String(),
			strconv.FormatUint(uint64(t.ClaimTax), 10),
			t.NextTier,
			strconv.FormatUint(uint64(t.LevelUpCount), 10),
		}
	})
}

// Owners renders address#position#nodeCount records.
func Owners(owners iter.Seq[entity.Owner]) string {
	return join(owners, func(o entity.Owner) []string {
		return []string{
			o.Address.Hex(),
			strconv.Itoa(o.Position),
			strconv.Itoa(o.NodeCount),
		}
	})
}

// Nodes renders type#id#createdUnix#lastClaimUnix records.
func Nodes(nodes iter.Seq[entity.Node]) string {
	return join(nodes, func(n entity.Node) []string {
		return []string{
			n.Type,
			strconv.FormatUint(n.ID, 10),
			strconv.FormatInt(n.CreatedAt.Unix(), 10),
			strconv.FormatInt(n.LastClaimAt.Unix(), 10),
		}
	})
}

// CreationTimes renders the creation timestamps of nodes joined by "#".
func CreationTimes(nodes iter.Seq[entity.Node]) string {
	var parts []string
	for n := range nodes {
		parts = append(parts, strconv.FormatInt(n.CreatedAt.Unix(), 10))
	}
	return strings.Join(parts, entity.FieldSeparator)
}

func records(s string) [][]string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, entity.RecordSeparator)
	out := make([][]string, 0, len(raw))
	for _, r := range raw {
		out = append(out, strings.Split(r, entity.FieldSeparator))
	}
	return out
}

// ParseNodeTypes is the inverse of NodeTypes.
func ParseNodeTypes(s string) ([]entity.NodeType, error) {
	recs := records(s)
	types := make([]entity.NodeType, 0, len(recs))
	for i, fields := range recs {
		if len(fields) != 7 {
			return nil, errors.Wrapf(errs.InvalidArgument, "node type record %d has %d fields", i, len(fields))
		}
		price, err := uint128.FromString(fields[1])
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "node type record %d: price %q", i, fields[1])
		}
		claimSeconds, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "node type record %d: claim time %q", i, fields[2])
		}
		rate, err := uint128.FromString(fields[3])
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "node type record %d: reward rate %q", i, fields[3])
		}
		tax, err := strconv.ParseUint(fields[4], 10, 8)
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "node type record %d: tax %q", i, fields[4])
		}
		levelUp, err := strconv.ParseUint(fields[6], 10, 32)
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "node type record %d: level-up count %q", i, fields[6])
		}
		types = append(types, entity.NodeType{
			Name:          fields[0],
			Price:         price,
			ClaimInterval: time.Duration(claimSeconds) * time.Second,
			RewardRate:    rate,
			ClaimTax:      uint8(tax),
			NextTier:      fields[5],
			LevelUpCount:  uint32(levelUp),
		})
	}
	return types, nil
}

// ParseTimestamps parses a "#"-joined list of unix seconds, as returned by the legacy contract.
func ParseTimestamps(s string) ([]time.Time, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, entity.FieldSeparator)
	out := make([]time.Time, 0, len(parts))
	for _, p := range parts {
		sec, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(errs.InvalidArgument, "invalid timestamp %q", p)
		}
		out = append(out, time.Unix(sec, 0).UTC())
	}
	return out, nil
}
