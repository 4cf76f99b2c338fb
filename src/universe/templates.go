package universe

//built-in seeding templates, coordinates are [x,y]
var (
	SampleTemplate = Template{
		"sample",
		"the test sample with 3 stable patterns",
		[][]int{
			{1, 1}, {1, 2},
			{2, 1}, {2, 2},
			{3, 3},
			{4, 2},
			{4, 3},
			{5, 3},
		},
	}
	BlinkerTemplate = Template{
		"blinker",
		"period 2 oscillator",
		[][]int{{1, 1}, {2, 1}, {3, 1}},
	}
	BlockTemplate = Template{
		"block",
		"2x2 still life",
		[][]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}},
	}
	GliderTemplate = Template{
		"glider",
		"travels diagonally and wraps around the edges",
		[][]int{{2, 0}, {3, 1}, {1, 2}, {2, 2}, {3, 2}},
	}
)

//BoardTemplateName is the template filled by SeedPattern instead of fixed coordinates
const BoardTemplateName = "board"

//BuiltinTemplates returns the templates every runner starts with
func BuiltinTemplates() []Template {
	return []Template{SampleTemplate, BlinkerTemplate, BlockTemplate, GliderTemplate}
}
