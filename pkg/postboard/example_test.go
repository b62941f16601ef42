package postboard_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/bft-labs/postboard/pkg/postboard"
)

// ExampleNew demonstrates building, mounting and serving an App.
func ExampleNew() {
	root := postboard.ComponentFunc{
		ComponentName: "Hello",
		RenderFunc: func(ctx context.Context, sc postboard.SetupContext) (http.Handler, error) {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, "hello")
			}), nil
		},
	}

	a, err := postboard.New(root)
	if err != nil {
		fmt.Printf("failed to create app: %v\n", err)
		return
	}

	host := postboard.NewRouterHost(nil).AddElement(postboard.MountPoint, "/")
	ctx := context.Background()
	if err := a.Mount(ctx, host, postboard.MountPoint); err != nil {
		fmt.Printf("failed to mount: %v\n", err)
		return
	}
	defer a.Unmount(ctx)

	rec := httptest.NewRecorder()
	host.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	fmt.Println(a.Status(), rec.Body.String())

	// Output: Mounted hello
}
