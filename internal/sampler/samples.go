package sampler

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Bundled transcripts covering the rubric bands.
var bundled = []Sample{
	{
		Name: "complete",
		Transcript: "Hello everyone, good morning. My name is Riya Sharma and my age is 13 years. " +
			"I study in class 8 at Green Valley Public School. There are four members in my family: " +
			"my parents, my younger brother and me. My hobbies are reading novels and playing cricket, " +
			"and my favourite subject is science because I enjoy experiments. My interests include " +
			"astronomy, and one of my goals is to become a scientist. A unique point about me is that I " +
			"am kind hearted and soft spoken. A fun fact about me is that I can solve a cube in a minute. " +
			"Thank you for listening.",
	},
	{
		Name: "partial",
		Transcript: "Hi, I am Kabir. I am in class 6 and I like football a lot. " +
			"I live with my family near the river and I go to school by bus every day.",
	},
	{
		Name: "fillers",
		Transcript: "Um so my name is uh Tara and like I am well twelve and um I study " +
			"in class seven and uh basically I like to actually draw and so yeah okay that is me.",
	},
	{
		Name:       "short",
		Transcript: "Hello, my name is Dev.",
	},
}

// Bundled returns a copy of the bundled samples.
func Bundled() []Sample {
	out := make([]Sample, len(bundled))
	copy(out, bundled)
	return out
}

// LoadSamples reads one transcript per file, named after the file.
func LoadSamples(files []string) ([]Sample, error) {
	samples := make([]Sample, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read transcript %s: %w", f, err)
		}
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		samples = append(samples, Sample{Name: name, Transcript: string(data)})
	}
	return samples, nil
}
