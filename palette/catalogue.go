package palette

import (
	"fmt"
	"strings"
)

// Brand selects a bead catalogue. Original is the identity sentinel: no
// quantization, every sampled color passes through as its own entry.
type Brand int

const (
	Original Brand = iota
	Mard
	Coco
	Manman
	Panpan
	Mixiaowo
)

// Entry is one catalogue color. ID is unique within a brand.
type Entry struct {
	ID   string
	Hex  RGB
	Name string
}

// OriginalName is the Name of every identity entry.
const OriginalName = "Original Color"

type brandInfo struct {
	name    string
	display string
	prefix  string
}

var brandTable = map[Brand]brandInfo{
	Original: {name: "Original", display: "原图色彩"},
	Mard:     {name: "Mard", display: "Mard (M系)", prefix: "M"},
	Coco:     {name: "Coco", display: "Coco (C系)", prefix: "C"},
	Manman:   {name: "Manman", display: "漫漫", prefix: "MM"},
	Panpan:   {name: "Panpan", display: "盼盼", prefix: "PP"},
	Mixiaowo: {name: "Mixiaowo", display: "咪小窝", prefix: "MX"},
}

// Brands lists every brand in selector order.
func Brands() []Brand {
	return []Brand{Original, Mard, Coco, Manman, Panpan, Mixiaowo}
}

func (b Brand) String() string {
	if info, ok := brandTable[b]; ok {
		return info.name
	}
	return fmt.Sprintf("Brand(%d)", int(b))
}

// DisplayName is the label shown in brand pickers.
func (b Brand) DisplayName() string {
	if info, ok := brandTable[b]; ok {
		return info.display
	}
	return b.String()
}

// Valid reports whether b is a registered brand.
func (b Brand) Valid() bool {
	_, ok := brandTable[b]
	return ok
}

// ParseBrand matches a brand name case-insensitively.
func ParseBrand(s string) (Brand, error) {
	for _, b := range Brands() {
		if strings.EqualFold(strings.TrimSpace(s), b.String()) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBrand, s)
}

func (b Brand) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBrand, int(b))
	}
	return []byte(b.String()), nil
}

func (b *Brand) UnmarshalText(text []byte) error {
	v, err := ParseBrand(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Catalogue data version 3.0 (291 colors). Every brand shares the list and
// differs only by ID prefix. Order is part of the format: ties in matching go
// to the earlier entry, so entries must never be reordered.
var rawHexValues = [...]string{
	"#FAF4C8", "#FFFFD5", "#FEFF8B", "#FBED56", "#F4D738", "#FEAC4C", "#FE8B4C", "#FFDA45", "#FF995B", "#F77C31",
	"#FFDD99", "#FE9F72", "#FFC365", "#FD543D", "#FFF365", "#FFFF9F", "#FFE36E", "#FEBE7D", "#FD7C72", "#FFD568",
	"#FFE395", "#F4F57D", "#E6C9B7", "#F7F8A2", "#FFD67D", "#FFC830", "#E6EE31", "#63F347", "#9EF780", "#5DE035",
	"#35E352", "#65E2A6", "#3DAF80", "#1C9C4F", "#27523A", "#95D3C2", "#5D722A", "#166F41", "#CAEB7B", "#ADE946",
	"#2E5132", "#C5ED9C", "#9BB13A", "#E6EE49", "#24B88C", "#C2F0CC", "#156A6B", "#0B3C43", "#303A21", "#EEFCA5",
	"#4E846D", "#8D7A35", "#CCE1AF", "#9EE5B9", "#C5E254", "#E2FCB1", "#B0E792", "#9CAB5A", "#E8FFE7", "#A9F9FC",
	"#A0E2FB", "#41CCFF", "#01ACEB", "#50AAF0", "#3677D2", "#0F54C0", "#324BCA", "#3EBCE2", "#28DDDE", "#1C334D",
	"#CDE8FF", "#D5FDFF", "#22C4C6", "#1557A8", "#04D1F6", "#1D3344", "#1887A2", "#176DAF", "#BEDDFF", "#67B4BE",
	"#C8E2FF", "#7CC4FF", "#A9E5E5", "#3CAED8", "#D3DFFA", "#BBCFED", "#34488E", "#AEB4F2", "#858EDD", "#2F54AF",
	"#182A84", "#B843C5", "#AC7BDE", "#8854B3", "#E2D3FF", "#D5B9F8", "#361851", "#B9BAE1", "#DE9AD4", "#B90095",
	"#8B279B", "#2F1F90", "#E3E1EE", "#C4D4F6", "#A45EC7", "#D8C3D7", "#9C32B2", "#9A009B", "#333A95", "#EBDAFC",
	"#7786E5", "#494FC7", "#DFC2F8", "#FDD3CC", "#FEC0DF", "#FFB7E7", "#E8649E", "#F551A2", "#F13D74", "#C63478",
	"#FFDBE9", "#E970CC", "#D33793", "#FCDDD2", "#F78FC3", "#B5006D", "#FFD1BA", "#F8C7C9", "#FFF3EB", "#FFE2EA",
	"#FFC7DB", "#FEBAD5", "#D8C7D1", "#BD9DA1", "#B785A1", "#937A8D", "#E1BCE8", "#FD957B", "#FC3D46", "#F74941",
	"#FC283C", "#E7002F", "#943630", "#971937", "#BC0028", "#E2677A", "#8A4526", "#5A2121", "#FD4E6A", "#F35744",
	"#FFA9AD", "#D30022", "#FEC2A6", "#E69C79", "#D37C46", "#C1444A", "#CD9391", "#F7B4C6", "#FDC0D0", "#F67E66",
	"#E698AA", "#E54B4F", "#FFE2CE", "#FFC4AA", "#F4C3A5", "#E1B383", "#EDB045", "#E99C17", "#9D5B3E", "#753832",
	"#E6B483", "#D98C39", "#E0C593", "#FFC890", "#B7714A", "#8D614C", "#FCF9E0", "#F2D9BA", "#78524B", "#FFE4CC",
	"#E07935", "#A94023", "#B88558", "#FDFBFF", "#FEFFFF", "#B6B1BA", "#89858C", "#48464E", "#2F2B2F", "#000000",
	"#E7D6DB", "#EDEDED", "#EEE9EA", "#CECDD5", "#FFF5ED", "#F5ECD2", "#CFD7D3", "#98A6A8", "#1D1414", "#F1EDED",
	"#FFFDF0", "#F6EFE2", "#949FA3", "#FFFBE1", "#CACAD4", "#9A9D94", "#BCC6B8", "#8AA386", "#697D80", "#E3D2BC",
	"#D0CCAA", "#B0A782", "#B4A497", "#B38281", "#A58767", "#C5B2BC", "#9F7594", "#644749", "#D19066", "#C77362",
	"#757D78", "#FCF7F8", "#B0A9AC", "#AFDCAB", "#FEA49F", "#EE8C3E", "#5FD0A7", "#EB9270", "#F0D958", "#D9D9D9",
	"#D9C7EA", "#F3ECC9", "#E6EEF2", "#AACBEF", "#337680", "#668575", "#FEBF45", "#FEA324", "#FEB89F", "#FFFEEC",
	"#FEBECF", "#ECBEBF", "#E4A89F", "#A56268", "#F2A5E8", "#E9EC91", "#FFFF00", "#FFEBFA", "#76CEDE", "#D50D21",
	"#F92F83", "#FD8324", "#F8EC31", "#35C75B", "#238891", "#19779D", "#1A60C3", "#9A56B4", "#FFDB4C", "#FFEBFB",
	"#D8D5CE", "#55514C", "#9FE4DF", "#77CEE9", "#3ECFCA", "#4A867A", "#7FCD9D", "#CDE55D", "#E8C7B4", "#AD6F3C",
	"#6C372F", "#FEB872", "#F3C1C0", "#C9675E", "#D293BE", "#EA8CB1", "#9C87D6", "#FFFFFF", "#FD6FB4", "#FEB481",
	"#D7FAA0", "#8BDBFA", "#E987EA", "#DAABB3", "#D6AA87", "#C1BD8D", "#96869F", "#8490A6", "#94BFE2", "#E2A9D2",
	"#AB91C0",
}

var catalogues map[Brand][]Entry

func init() {
	catalogues = make(map[Brand][]Entry, len(brandTable)-1)
	for _, b := range Brands() {
		if b == Original {
			continue
		}
		entries := buildCatalogue(brandTable[b].prefix)
		if err := checkCatalogue(entries); err != nil {
			panic(fmt.Sprintf("palette: %s catalogue: %v", b, err))
		}
		catalogues[b] = entries
	}
}

func buildCatalogue(prefix string) []Entry {
	entries := make([]Entry, len(rawHexValues))
	for i, hex := range rawHexValues {
		entries[i] = Entry{
			ID:   fmt.Sprintf("%s%d", prefix, i+1),
			Hex:  MustParseHex(hex),
			Name: fmt.Sprintf("Color %d", i+1),
		}
	}
	return entries
}

func checkCatalogue(entries []Entry) error {
	if len(entries) == 0 {
		return fmt.Errorf("empty catalogue")
	}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("duplicate id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// Catalogue returns a copy of the brand's entries in catalogue order. The
// Original brand has no catalogue and returns nil.
func Catalogue(b Brand) []Entry {
	entries, ok := catalogues[b]
	if !ok {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
