package ocr

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// CaptureFunc produces the image to recognize, typically a clipped
// screenshot of the post header.
type CaptureFunc func(ctx context.Context) ([]byte, error)

// ScreenRecognizer captures an image and runs it through the handle's worker.
// It satisfies candidate.Recognizer.
type ScreenRecognizer struct {
	handle  *Handle
	capture CaptureFunc
}

func NewScreenRecognizer(handle *Handle, capture CaptureFunc) *ScreenRecognizer {
	return &ScreenRecognizer{handle: handle, capture: capture}
}

// RecognizeText returns the recognized text with whitespace runs collapsed.
func (r *ScreenRecognizer) RecognizeText(ctx context.Context) (string, error) {
	image, err := r.capture(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to capture image")
	}
	text, err := r.handle.Recognize(ctx, image)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(text), " "), nil
}
