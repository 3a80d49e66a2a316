package obeviz

type Palette []string

// Color cycles through the palette with a plain modular index; category
// lists are unbounded, palettes are not.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return "currentColor"
	}
	return p[i%len(p)]
}

var (
	Category10 Palette
	Tableau10  Palette
	BuRd5      Palette
	BuRd6      Palette
	BuRd7      Palette
	RdBu11     Palette
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
	BuRd5 = splitColorString("2166ac92c5def7f7f7f4a582b2182b")
	BuRd6 = splitColorString("2166ac67a9cfd1e5f0fddbc7ef8a62b2182b")
	BuRd7 = splitColorString("2166ac67a9cfd1e5f0f7f7f7fddbc7ef8a62b2182b")
	RdBu11 = splitColorString("67001fb2182bd6604df4a582fddbc7f7f7f7d1e5f092c5de4393c32166ac053061")
}

func splitColorString(str string) Palette {
	var arr Palette
	for i := 0; i < len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}
