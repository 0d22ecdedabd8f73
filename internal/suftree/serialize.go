package suftree

import (
	"encoding/binary"
	"io"

	"github.com/gosari/sari/errs"
)

// Serialize writes (n, T[n], tree_node_preorder) per spec.md §6:
//
//	tree_node_preorder := u8 is_leaf;
//	  if leaf { u32 offset }
//	  else    { u8 k; u32 start[k]; u32 end[k]; node[k] }
func (c *Compact) Serialize(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(c.t))); err != nil {
		return errs.NewIO("suftree.Serialize", err)
	}
	if _, err := w.Write(c.t); err != nil {
		return errs.NewIO("suftree.Serialize", err)
	}
	if err := c.writeNode(w, c.root); err != nil {
		return errs.NewIO("suftree.Serialize", err)
	}
	return nil
}

func (c *Compact) writeNode(w io.Writer, idx int32) error {
	n := &c.nodes[idx]
	if n.isLeaf {
		if err := binary.Write(w, binary.LittleEndian, uint8(1)); err != nil {
			return err
		}
		return binary.Write(w, binary.LittleEndian, uint32(n.offset))
	}

	if err := binary.Write(w, binary.LittleEndian, uint8(0)); err != nil {
		return err
	}
	if len(n.children) > 255 {
		return errs.NewBuild("suftree: internal node has more than 255 children")
	}
	if err := binary.Write(w, binary.LittleEndian, uint8(len(n.children))); err != nil {
		return err
	}
	for _, s := range n.starts {
		if err := binary.Write(w, binary.LittleEndian, uint32(s)); err != nil {
			return err
		}
	}
	for _, e := range n.ends {
		if err := binary.Write(w, binary.LittleEndian, uint32(e)); err != nil {
			return err
		}
	}
	for _, child := range n.children {
		if err := c.writeNode(w, child); err != nil {
			return err
		}
	}
	return nil
}

// Deserialize reads a Compact tree previously written by Serialize.
func Deserialize(r io.Reader) (*Compact, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, errs.NewIO("suftree.Deserialize", err)
	}
	t := make([]byte, n)
	if _, err := io.ReadFull(r, t); err != nil {
		return nil, errs.NewIO("suftree.Deserialize", err)
	}

	c := &Compact{t: t}
	root, err := c.readNode(r)
	if err != nil {
		return nil, errs.NewIO("suftree.Deserialize", err)
	}
	c.root = root
	return c, nil
}

func (c *Compact) readNode(r io.Reader) (int32, error) {
	var isLeaf uint8
	if err := binary.Read(r, binary.LittleEndian, &isLeaf); err != nil {
		return 0, err
	}
	if isLeaf == 1 {
		var offset uint32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return 0, err
		}
		c.nodes = append(c.nodes, compactNode{isLeaf: true, offset: int32(offset)})
		return int32(len(c.nodes) - 1), nil
	}

	var k uint8
	if err := binary.Read(r, binary.LittleEndian, &k); err != nil {
		return 0, err
	}
	starts := make([]int32, k)
	ends := make([]int32, k)
	for i := range starts {
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		starts[i] = int32(v)
	}
	for i := range ends {
		var v uint32
		if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		ends[i] = int32(v)
	}

	myIdx := int32(len(c.nodes))
	c.nodes = append(c.nodes, compactNode{})
	children := make([]int32, k)
	for i := range children {
		childIdx, err := c.readNode(r)
		if err != nil {
			return 0, err
		}
		children[i] = childIdx
	}
	c.nodes[myIdx] = compactNode{isLeaf: false, starts: starts, ends: ends, children: children}
	return myIdx, nil
}
