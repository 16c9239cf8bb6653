package sileo_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/sileo"
	"github.com/aretw0/sileo/pkg/adapters/memory"
	"github.com/aretw0/sileo/pkg/domain"
	"github.com/aretw0/sileo/pkg/scheduler"
)

// ExampleNotifier drives a notifier in virtual time against the in-memory surface.
func ExampleNotifier() {
	clock := scheduler.NewManual()
	n := sileo.New(memory.NewSurface(), sileo.WithScheduler(clock))
	defer n.Close()

	n.Init(sileo.InitOptions{Position: domain.BottomRight})

	id := n.Success(domain.Options{Title: "Saved", Duration: domain.Expires(2 * time.Second)})
	fmt.Println(id, len(n.Items()), n.Items()[0].Position)

	clock.Advance(2 * time.Second)
	fmt.Println("exiting:", n.Items()[0].Exiting)

	clock.Advance(domain.ExitDuration)
	fmt.Println("left:", len(n.Items()))

	// Output:
	// sileo-default 1 bottom-right
	// exiting: true
	// left: 0
}

// ExamplePromise shows a loading toast that turns into an error.
func ExamplePromise() {
	clock := scheduler.NewManual()
	n := sileo.New(memory.NewSurface(), sileo.WithScheduler(clock))
	defer n.Close()

	upload := func(ctx context.Context) (string, error) {
		return "", errors.New("quota exceeded")
	}

	_, err := sileo.Promise(context.Background(), n, upload, sileo.PromiseOptions[string]{
		Loading: domain.Options{ID: "upload", Title: "Uploading"},
		Success: sileo.Static[string](domain.Options{Title: "Uploaded"}),
		Error: func(err error) domain.Options {
			return domain.Options{Title: "Upload failed", Description: domain.Text(err.Error())}
		},
	})

	it := n.Items()[0]
	fmt.Println(err)
	fmt.Println(it.ID, it.State, it.Title, it.Description)

	// Output:
	// quota exceeded
	// upload error Upload failed quota exceeded
}
