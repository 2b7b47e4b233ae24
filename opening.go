package dmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/celestiaorg/dmt/pb"
)

// ErrMalformedOpening is returned when an opening is structurally broken:
// mismatched path lengths, an unknown side marker, or a leaf index that
// contradicts the path.
var ErrMalformedOpening = errors.New("malformed opening")

// Side says which side of its parent a sibling digest sits on.
type Side byte

const (
	// Left marks a sibling that is the left child of its parent.
	Left Side = iota
	// Right marks a sibling that is the right child of its parent.
	Right
)

func (side Side) String() string {
	switch side {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", byte(side))
	}
}

// Opening is a self-contained inclusion proof for one leaf of a dense
// Merkle tree: the raw leaf value plus, level by level from the leaf
// upwards, the sibling digest and the side that sibling sits on. Together
// with the root digest and the tree's hasher it is everything a verifier
// needs.
type Opening struct {
	// leafIndex of the opened leaf.
	leafIndex int
	// leafValue is the raw value of the opened leaf, pre-hashing.
	leafValue []byte
	// siblings holds one sibling digest per level, leaf level first.
	siblings [][]byte
	// sides[k] is the side of the parent that siblings[k] occupies.
	sides []Side
}

// NewOpening constructs an opening from its parts. The slices are stored
// as given, not copied.
func NewOpening(leafIndex int, leafValue []byte, siblings [][]byte, sides []Side) Opening {
	return Opening{leafIndex, leafValue, siblings, sides}
}

// LeafIndex of the opened leaf.
func (opening Opening) LeafIndex() int {
	return opening.leafIndex
}

// LeafValue returns the raw value of the opened leaf.
func (opening Opening) LeafValue() []byte {
	return opening.leafValue
}

// Siblings returns the sibling digests on the path from the leaf to the
// root, leaf level first.
func (opening Opening) Siblings() [][]byte {
	return opening.siblings
}

// Sides returns, per level, the side of the parent the sibling digest
// occupies.
func (opening Opening) Sides() []Side {
	return opening.sides
}

// Height returns the number of path levels, which equals the height of
// the tree the opening was taken from.
func (opening Opening) Height() int {
	return len(opening.sides)
}

// Verify recomputes the root from the opening and reports whether it
// matches the given one: it hashes the leaf value, then folds in the
// sibling digests level by level, putting each sibling on its recorded
// side. A structurally broken opening verifies as false, never panics.
//
// It must run with the same hasher the tree was built with. Verify does
// not cross-check LeafIndex against the path sides; ValidateBasic does.
func (opening Opening) Verify(treeHasher TreeHasher, root []byte) bool {
	if len(opening.siblings) != len(opening.sides) {
		return false
	}
	size := treeHasher.Size()
	if len(root) != size {
		return false
	}

	current := treeHasher.HashLeaf(opening.leafValue)
	for i, sibling := range opening.siblings {
		if len(sibling) != size {
			return false
		}
		switch opening.sides[i] {
		case Left:
			current = treeHasher.HashInternal(sibling, current)
		case Right:
			current = treeHasher.HashInternal(current, sibling)
		default:
			return false
		}
	}
	return bytes.Equal(current, root)
}

// ValidateBasic performs stateless sanity checks on the opening: the path
// slices must line up, every side marker must be Left or Right, the
// sibling digests must be non-empty and uniform in size, and the leaf
// index must match the position the sides encode. It needs no hasher and
// no root; a nil error does not mean the opening verifies.
func (opening Opening) ValidateBasic() error {
	if opening.leafIndex < 0 {
		return fmt.Errorf("%w: negative leaf index %d", ErrMalformedOpening, opening.leafIndex)
	}
	if len(opening.sides) > maxSupportedHeight {
		return fmt.Errorf("%w: path of %d levels exceeds the supported height %d", ErrMalformedOpening, len(opening.sides), maxSupportedHeight)
	}
	if len(opening.siblings) != len(opening.sides) {
		return fmt.Errorf("%w: got %d sibling hashes and %d sides", ErrMalformedOpening, len(opening.siblings), len(opening.sides))
	}
	for i, sibling := range opening.siblings {
		if len(sibling) == 0 {
			return fmt.Errorf("%w: empty sibling hash at level %d", ErrMalformedOpening, i)
		}
		if len(sibling) != len(opening.siblings[0]) {
			return fmt.Errorf("%w: sibling hash at level %d is %d bytes, level 0 has %d", ErrMalformedOpening, i, len(sibling), len(opening.siblings[0]))
		}
	}

	// The sides encode the leaf position bit by bit: the sibling sits on
	// the right exactly when the path node is a left child.
	wantIndex := 0
	for k, side := range opening.sides {
		switch side {
		case Left:
			wantIndex |= 1 << k
		case Right:
		default:
			return fmt.Errorf("%w: unknown side %d at level %d", ErrMalformedOpening, side, k)
		}
	}
	if opening.leafIndex != wantIndex {
		return fmt.Errorf("%w: leaf index %d does not match the path sides (want %d)", ErrMalformedOpening, opening.leafIndex, wantIndex)
	}
	return nil
}

// ToProto converts the opening to its protobuf representation.
func (opening Opening) ToProto() pb.Opening {
	sides := make([]byte, len(opening.sides))
	for i, side := range opening.sides {
		sides[i] = byte(side)
	}
	return pb.Opening{
		LeafIndex: int64(opening.leafIndex),
		LeafValue: opening.leafValue,
		Siblings:  opening.siblings,
		Sides:     sides,
	}
}

// ProtoToOpening converts a protobuf opening back and validates it,
// returning ErrMalformedOpening if the wire data is structurally broken.
func ProtoToOpening(protoOpening pb.Opening) (Opening, error) {
	if protoOpening.LeafIndex > int64(1<<maxSupportedHeight) {
		return Opening{}, fmt.Errorf("%w: leaf index %d exceeds the supported height", ErrMalformedOpening, protoOpening.LeafIndex)
	}

	opening := Opening{
		leafIndex: int(protoOpening.LeafIndex),
		leafValue: bytesOrNil(protoOpening.LeafValue),
	}
	if len(protoOpening.Siblings) > 0 {
		opening.siblings = make([][]byte, len(protoOpening.Siblings))
		for i, sibling := range protoOpening.Siblings {
			opening.siblings[i] = bytesOrNil(sibling)
		}
	}
	if len(protoOpening.Sides) > 0 {
		opening.sides = make([]Side, len(protoOpening.Sides))
		for i, side := range protoOpening.Sides {
			opening.sides[i] = Side(side)
		}
	}

	if err := opening.ValidateBasic(); err != nil {
		return Opening{}, err
	}
	return opening, nil
}

// jsonOpening carries sides as plain ints: a []Side field would be
// base64 encoded like []byte, since Side is byte sized.
type jsonOpening struct {
	LeafIndex int      `json:"leaf_index"`
	LeafValue []byte   `json:"leaf_value"`
	Siblings  [][]byte `json:"siblings"`
	Sides     []int    `json:"sides"`
}

// MarshalJSON encodes the opening with base64 byte fields and numeric
// side markers.
func (opening Opening) MarshalJSON() ([]byte, error) {
	jsonOpeningObj := jsonOpening{
		LeafIndex: opening.leafIndex,
		LeafValue: opening.leafValue,
		Siblings:  opening.siblings,
	}
	if len(opening.sides) > 0 {
		jsonOpeningObj.Sides = make([]int, len(opening.sides))
		for i, side := range opening.sides {
			jsonOpeningObj.Sides[i] = int(side)
		}
	}
	return json.Marshal(jsonOpeningObj)
}

// UnmarshalJSON decodes and validates an opening, returning
// ErrMalformedOpening if the decoded data is structurally broken.
func (opening *Opening) UnmarshalJSON(data []byte) error {
	var jsonOpeningObj jsonOpening
	if err := json.Unmarshal(data, &jsonOpeningObj); err != nil {
		return err
	}
	decoded := Opening{
		leafIndex: jsonOpeningObj.LeafIndex,
		leafValue: bytesOrNil(jsonOpeningObj.LeafValue),
	}
	if len(jsonOpeningObj.Siblings) > 0 {
		decoded.siblings = make([][]byte, len(jsonOpeningObj.Siblings))
		for i, sibling := range jsonOpeningObj.Siblings {
			decoded.siblings[i] = bytesOrNil(sibling)
		}
	}
	if len(jsonOpeningObj.Sides) > 0 {
		decoded.sides = make([]Side, len(jsonOpeningObj.Sides))
		for i, side := range jsonOpeningObj.Sides {
			if side < 0 || side > math.MaxUint8 {
				return fmt.Errorf("%w: side %d at level %d does not fit a side byte", ErrMalformedOpening, side, i)
			}
			decoded.sides[i] = Side(side)
		}
	}
	if err := decoded.ValidateBasic(); err != nil {
		return err
	}
	*opening = decoded
	return nil
}

// bytesOrNil copies b, normalizing empty to nil so that decoded openings
// compare equal to freshly built ones.
func bytesOrNil(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return append([]byte(nil), b...)
}
