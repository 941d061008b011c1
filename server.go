package notepub

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer returns an Echo instance serving the output directory.
func (a *App) NewServer() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger = a.Logger
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		httpErrorHandler(e, err, c)
	}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(noCacheMiddleware)

	e.Static("/", a.Config.OutputDir)
	a.Echo = e
	return e
}

// Serve runs the preview server and the watcher until ctx is done. If the
// watcher stops with an error the server is shut down and the error returned.
func (a *App) Serve(ctx context.Context) error {
	e := a.NewServer()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- a.Watch(ctx, true)
	}()

	serveErr := make(chan error, 1)
	go func() {
		a.Logger.Infof("Serving %s on %s", a.Config.OutputDir, a.Config.Addr)
		serveErr <- e.Start(a.Config.Addr)
	}()

	var err error
	select {
	case err = <-serveErr:
		cancel()
		if werr := <-watchErr; werr != nil && (err == nil || errors.Is(err, http.ErrServerClosed)) {
			err = werr
		}
	case err = <-watchErr:
		// Watch returns nil once ctx is done.
		if err != nil {
			a.Logger.Errorf("watcher stopped: %v", err)
		}
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = e.Shutdown(shutdownCtx)
		if serr := <-serveErr; err == nil {
			err = serr
		}
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Pages change on every publish; the preview must never serve a stale copy.
func noCacheMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Cache-Control", "no-store")
		return next(c)
	}
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// statusPage is a minimal standalone error page.
func statusPage(code int, detail string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := templ.EscapeString(http.StatusText(code))
		var b strings.Builder
		b.WriteString("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><title>")
		b.WriteString(title)
		b.WriteString("</title></head><body><h1>")
		b.WriteString(title)
		b.WriteString("</h1>")
		if detail != "" {
			b.WriteString("<p>")
			b.WriteString(templ.EscapeString(detail))
			b.WriteString("</p>")
		}
		b.WriteString(`<p><a href="/index.html">Back to the index</a></p></body></html>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func httpErrorHandler(e *echo.Echo, err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, statusPage(http.StatusNotFound, "Nothing has been published at "+c.Request().URL.Path+"."))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, statusPage(code, ""))
		return
	}
	e.DefaultHTTPErrorHandler(err, c)
}
