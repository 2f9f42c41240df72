// Package chunk splits source file text into overlapping, line-aligned
// chunks suitable for embedding.
package chunk

import "strings"

// Chunk is a contiguous, line-aligned excerpt of one source file.
type Chunk struct {
	ID        uint64
	Text      string
	FilePath  string
	StartLine int
	EndLine   int
	FileHash  string
	Language  string
}

// Chunker splits text into overlapping chunks using a deterministic
// line-aligned sliding window.
type Chunker struct {
	ChunkSize int
	Overlap   int
}

// New creates a Chunker with the given target chunk size and overlap, both
// measured in characters (including the trailing newline each line
// contributes).
func New(chunkSize, overlap int) *Chunker {
	return &Chunker{ChunkSize: chunkSize, Overlap: overlap}
}

// Chunk splits text into an ordered sequence of Chunks, assigning ids
// starting at startID and incrementing by one per chunk. Deterministic: the
// same inputs always produce the same output.
func (c *Chunker) Chunk(text, filePath, fileHash string, startID uint64) []Chunk {
	language := DetectLanguage(filePath)
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil
	}

	var chunks []Chunk
	var buffer []string
	size := 0
	chunkStartLine := 1
	chunkID := startID

	for i, line := range lines {
		lineLen := len(line) + 1 // +1 for the separating newline

		if size+lineLen > c.ChunkSize && len(buffer) > 0 {
			endLine := chunkStartLine + len(buffer) - 1
			chunks = append(chunks, Chunk{
				ID:        chunkID,
				Text:      strings.Join(buffer, "\n"),
				FilePath:  filePath,
				StartLine: chunkStartLine,
				EndLine:   endLine,
				FileHash:  fileHash,
				Language:  language,
			})
			chunkID++

			keep := c.overlapLines(buffer)
			if keep > len(buffer) {
				keep = len(buffer)
			}

			if keep > 0 {
				buffer = append([]string(nil), buffer[len(buffer)-keep:]...)
				size = 0
				for _, l := range buffer {
					size += len(l) + 1
				}
				chunkStartLine = i + 1 - keep + 1
			} else {
				buffer = nil
				size = 0
				chunkStartLine = i + 2
			}
		}

		buffer = append(buffer, line)
		size += lineLen
	}

	if len(buffer) > 0 {
		endLine := chunkStartLine + len(buffer) - 1
		chunks = append(chunks, Chunk{
			ID:        chunkID,
			Text:      strings.Join(buffer, "\n"),
			FilePath:  filePath,
			StartLine: chunkStartLine,
			EndLine:   endLine,
			FileHash:  fileHash,
			Language:  language,
		})
	}

	return chunks
}

// overlapLines walks buffer from the end, accumulating byte size, and
// returns how many trailing lines fit within c.Overlap. Always returns at
// least 1 when buffer is non-empty.
func (c *Chunker) overlapLines(buffer []string) int {
	size := 0
	count := 0
	for i := len(buffer) - 1; i >= 0; i-- {
		size += len(buffer[i]) + 1
		if size > c.Overlap {
			break
		}
		count++
	}
	if count < 1 && len(buffer) > 0 {
		count = 1
	}
	return count
}

// splitLines splits text on "\n" the way the spec's source does: no
// trailing empty line is produced for a trailing newline, and an empty
// string yields zero lines.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}
	return lines
}
