package mesh

import (
	"encoding/gob"
	"fmt"
	"os"
	"sort"
)

// PathFromAccumulation derives a valid processing order by sorting the
// active cells on ascending flow accumulation: a receiver always drains
// at least one more cell than any of its contributors, so the sort is a
// topological order of the D8 graph (assumed acyclic).
func PathFromAccumulation(nrow, ncol int, flwacc, active []int32) [][2]int {
	type ca struct {
		cid int
		acc int32
	}
	cs := make([]ca, 0, len(flwacc))
	for c, a := range active {
		if a > 0 {
			cs = append(cs, ca{c, flwacc[c]})
		}
	}
	sort.SliceStable(cs, func(i, j int) bool { return cs[i].acc < cs[j].acc })
	path := make([][2]int, len(cs))
	for i, v := range cs {
		path[i] = [2]int{v.cid / ncol, v.cid % ncol}
	}
	return path
}

// SaveGob writes the mesh to fp.
func (m *Mesh) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" mesh.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return fmt.Errorf(" mesh.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGob reads a mesh from fp.
func LoadGob(fp string) (*Mesh, error) {
	var m Mesh
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, err
	}
	f.Close()
	m.buildXR()
	return &m, nil
}
