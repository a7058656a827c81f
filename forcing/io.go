package forcing

import (
	"encoding/gob"
	"fmt"
	"os"
)

// SaveGob writes the forcing to fp.
func (frc *Forcing) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(frc); err != nil {
		return fmt.Errorf(" forcing.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGob reads a forcing from fp.
func LoadGob(fp string) (*Forcing, error) {
	var frc Forcing
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&frc); err != nil {
		return nil, err
	}
	f.Close()
	return &frc, nil
}
