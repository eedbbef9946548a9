package contract

import "context"

// Source produces the resolved model deployments for the process.
// Initialize must succeed before any getter may be used.
type Source interface {
	Initialize(ctx context.Context) error
	StandardChatModel() (ModelConfiguration, error)
	SimpleChatModel() (ModelConfiguration, error)
	TextEmbeddingModel() (ModelConfiguration, error)
	Models() (ModelSet, error)
}

// Agent is one request/response exchange with a remote chat model.
type Agent interface {
	Run(ctx context.Context, userInput string) (string, error)
}
