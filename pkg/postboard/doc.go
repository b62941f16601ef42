// Package postboard provides the application shell that hosts postboard's
// component tree.
//
// An [App] is built from a root [Component]. Plugins extend it before it is
// mounted, values are shared with the component tree through
// [App.Provide], and [App.Mount] renders the tree and attaches it to a named
// element of a [Host].
//
// # Basic Usage
//
//	a, err := postboard.New(root, postboard.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	if err := a.Use(ctx, storeplugin.New(kv)); err != nil {
//	    return err
//	}
//	a.Provide(postboard.HTTPClientKey, client)
//
//	host := postboard.NewRouterHost(chi.NewRouter()).AddElement(postboard.MountPoint, "/")
//	if err := a.Mount(ctx, host, postboard.MountPoint); err != nil {
//	    return err
//	}
//	http.ListenAndServe(":8080", host.Handler())
//
// # Plugins
//
// A [Plugin] is installed once per name with [App.Use], in call order.
// Plugins are shut down in reverse order by [App.Unmount]. Panics inside a
// plugin are recovered and returned as errors.
//
// # Provide and Inject
//
// Components read provided values through [SetupContext.Inject] or the
// typed helper [Inject]. Keys are plain strings; the well-known keys are
// [StoresKey] and [HTTPClientKey].
//
// # Lifecycle States
//
// An App moves through [StateCreated], [StateMounting], [StateMounted],
// [StateUnmounting] and [StateUnmounted]; failures go to [StateCrashed].
// An App is mounted at most once.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package postboard
