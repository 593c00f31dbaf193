package dialect

import "fmt"

// Platform pairs the assembly and BASIC dialects of one retro machine.
type Platform struct {
	ID       string
	Name     string
	Assembly string // mode id used for assembly sources
	Basic    string // mode id used for BASIC sources
}

var platforms = []Platform{
	{ID: "apple2", Name: "Apple II", Assembly: IDAsm65C02, Basic: IDApplesoft},
	{ID: "coco", Name: "TRS-80 Color Computer", Assembly: IDAsm6809, Basic: IDEcb},
	{ID: "c64", Name: "Commodore 64", Assembly: IDAsm6502, Basic: IDBasic},
}

// Platforms returns the supported platforms.
func Platforms() []Platform {
	return append([]Platform(nil), platforms...)
}

// PlatformByID looks up a platform.
func PlatformByID(id string) (Platform, error) {
	for _, p := range platforms {
		if p.ID == id {
			return p, nil
		}
	}
	return Platform{}, fmt.Errorf("unknown platform: %q", id)
}
