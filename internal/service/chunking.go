package service

import "sort"

// DefaultChunkSize is the window, in characters, fed to the model per call.
const DefaultChunkSize = 2048

// adaptiveChunkSizes are the windows AdaptiveChunkSize chooses from, ascending.
var adaptiveChunkSizes = []int{1024, 2048, 4096}

// ChunkText splits text into consecutive windows of size code points. The
// last window may be shorter. Empty text yields no chunks.
func ChunkText(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}

	runes := []rune(text)
	chunks := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// AdaptiveChunkSize returns the largest window that does not exceed n
// characters, never less than the smallest window.
func AdaptiveChunkSize(n int) int {
	idx := sort.Search(len(adaptiveChunkSizes), func(i int) bool {
		return adaptiveChunkSizes[i] > n
	})
	if idx == 0 {
		return adaptiveChunkSizes[0]
	}
	return adaptiveChunkSizes[idx-1]
}
