package main

import (
	_ "github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/tone/speaker" // registers the audio device
)

func main() {
	Execute()
}
