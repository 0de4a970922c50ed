package chunking

type ChunkingClient interface {
	ChunkText(text string) ([]string, error)
}
