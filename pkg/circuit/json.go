package circuit

import (
	"encoding/json"

	"github.com/quantforge/qweave/pkg/errors"
	"github.com/quantforge/qweave/pkg/pauli"
)

// commandJSON mirrors Command with Pauli strings in text form.
type commandJSON struct {
	Op        string     `json:"op"`
	Qubits    []int      `json:"qubits,omitempty"`
	Bits      []int      `json:"bits,omitempty"`
	Angles    []float64  `json:"angles,omitempty"`
	Paulis    []string   `json:"paulis,omitempty"`
	ReadBits  []int      `json:"read_bits,omitempty"`
	WriteBits []int      `json:"write_bits,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
	Name      string     `json:"name,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c Command) MarshalJSON() ([]byte, error) {
	out := commandJSON{
		Op:        c.Op.String(),
		Qubits:    c.Qubits,
		Bits:      c.Bits,
		Angles:    c.Angles,
		ReadBits:  c.ReadBits,
		WriteBits: c.WriteBits,
		Condition: c.Condition,
		Name:      c.Name,
	}
	for _, p := range c.Paulis {
		out.Paulis = append(out.Paulis, p.String())
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Command) UnmarshalJSON(data []byte) error {
	var in commandJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding command")
	}
	op, ok := ParseOpType(in.Op)
	if !ok {
		return errors.New(errors.ErrCodeUnsupportedOp, "unknown op type %q", in.Op)
	}
	*c = Command{
		Op:        op,
		Qubits:    in.Qubits,
		Bits:      in.Bits,
		Angles:    in.Angles,
		ReadBits:  in.ReadBits,
		WriteBits: in.WriteBits,
		Condition: in.Condition,
		Name:      in.Name,
	}
	for _, s := range in.Paulis {
		p, err := pauli.ParseString(s)
		if err != nil {
			return err
		}
		c.Paulis = append(c.Paulis, p)
	}
	return nil
}

// Decode parses a circuit from its JSON encoding and validates every
// command against the declared registers.
func Decode(data []byte) (*Circuit, error) {
	var raw struct {
		Name        string            `json:"name"`
		NQubits     int               `json:"n_qubits"`
		NBits       int               `json:"n_bits"`
		Phase       float64           `json:"phase"`
		Commands    []json.RawMessage `json:"commands"`
		Permutation []int             `json:"permutation"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding circuit")
	}
	if raw.NQubits < 0 || raw.NBits < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "negative register size")
	}
	c := New(raw.NQubits, raw.NBits)
	c.Name = raw.Name
	c.Phase = raw.Phase
	c.Permutation = raw.Permutation
	for i, msg := range raw.Commands {
		var cmd Command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "command %d", i)
		}
		if err := c.Append(cmd); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "command %d", i)
		}
	}
	return c, nil
}

// Encode serialises the circuit to JSON.
func (c *Circuit) Encode() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encoding circuit")
	}
	return data, nil
}
