package correction

import "context"

type CorrectionService interface {
	Raise(ctx context.Context, req RaiseCorrectionRequest) (CorrectionResponse, error)
	Review(ctx context.Context, req ReviewCorrectionRequest) (CorrectionResponse, error)
	Get(ctx context.Context, id string) (CorrectionResponse, error)
	ListPending(ctx context.Context) ([]CorrectionResponse, error)
}
