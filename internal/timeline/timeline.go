// Package timeline turns a trip into the ordered detail blocks shown in a
// card's expandable panel: one block per ride segment with a transfer block
// between each consecutive pair.
package timeline

import (
	"encoding/json"
	"fmt"

	"trajetviz.dev/internal/itinerary"
	"trajetviz.dev/internal/timefmt"
)

// BlockKind is the closed set of detail block variants.
type BlockKind int

const (
	KindSegment BlockKind = iota
	KindTransfer
)

func (k BlockKind) String() string {
	switch k {
	case KindSegment:
		return "segment"
	case KindTransfer:
		return "transfer"
	default:
		return fmt.Sprintf("BlockKind(%d)", int(k))
	}
}

func (k BlockKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *BlockKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "segment":
		*k = KindSegment
	case "transfer":
		*k = KindTransfer
	default:
		return fmt.Errorf("unknown block kind %q", s)
	}
	return nil
}

// SegmentBlock describes one ride leg.
type SegmentBlock struct {
	Index        int    `json:"index"`
	From         string `json:"from"`
	To           string `json:"to"`
	TripLabel    string `json:"tripLabel"`
	BoardTime    int    `json:"boardTime"`
	ArrivalTime  int    `json:"arrivalTime"`
	BoardClock   string `json:"boardClock"`
	ArrivalClock string `json:"arrivalClock"`
	Minutes      int    `json:"minutes"`
	Duration     string `json:"duration"`
	IsFirst      bool   `json:"isFirst"`
	IsLast       bool   `json:"isLast"`
}

// TransferBlock describes the wait between two legs.
type TransferBlock struct {
	At          string `json:"at"`
	WaitMinutes int    `json:"waitMinutes"`
	Wait        string `json:"wait"`
}

// Block is exactly one of Segment or Transfer, as selected by Kind.
type Block struct {
	Kind     BlockKind      `json:"kind"`
	Segment  *SegmentBlock  `json:"segment,omitempty"`
	Transfer *TransferBlock `json:"transfer,omitempty"`
}

// Details is the composed panel for one trip.
type Details struct {
	Blocks         []Block `json:"blocks"`
	Classification string  `json:"classification"`
	Duration       string  `json:"duration"`
	Direct         bool    `json:"direct"`
}

// Compose builds the detail blocks for trip. The sequence is
// seg0, transfer(0,1), seg1, ..., seg[n-1]; there is never a trailing
// transfer. Waits are formatted as-is, negative ones included.
func Compose(trip itinerary.Trip) Details {
	n := len(trip.Segments)

	blocks := make([]Block, 0, max(2*n-1, 0))
	for i, seg := range trip.Segments {
		blocks = append(blocks, Block{
			Kind: KindSegment,
			Segment: &SegmentBlock{
				Index:        i,
				From:         seg.From,
				To:           seg.To,
				TripLabel:    seg.TripLabel,
				BoardTime:    seg.BoardTime,
				ArrivalTime:  seg.ArrivalTime,
				BoardClock:   timefmt.FormatClock(seg.BoardTime),
				ArrivalClock: timefmt.FormatClock(seg.ArrivalTime),
				Minutes:      seg.Duration(),
				Duration:     timefmt.FormatDuration(seg.Duration()),
				IsFirst:      i == 0,
				IsLast:       i == n-1,
			},
		})

		if i < n-1 {
			wait := trip.Wait(i)
			blocks = append(blocks, Block{
				Kind: KindTransfer,
				Transfer: &TransferBlock{
					At:          seg.To,
					WaitMinutes: wait,
					Wait:        timefmt.FormatDuration(wait),
				},
			})
		}
	}

	return Details{
		Blocks:         blocks,
		Classification: trip.Classification(),
		Duration:       timefmt.FormatDuration(trip.TotalDuration()),
		Direct:         trip.IsDirect(),
	}
}

// Segments returns only the segment blocks of d, in order.
func (d Details) Segments() []SegmentBlock {
	out := make([]SegmentBlock, 0, (len(d.Blocks)+1)/2)
	for _, b := range d.Blocks {
		if b.Kind == KindSegment && b.Segment != nil {
			out = append(out, *b.Segment)
		}
	}
	return out
}
