package main

import (
	"github.com/dnalborczyk/url-pattern-list"
	gotilsstrconv "github.com/savsgio/gotils/strconv"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// newServeHandler builds a fasthttp.RequestHandler that runs every
// incoming request's full URL through list.Match and writes the matched
// payload back as the response body.
func newServeHandler(list *urlpatternlist.List, logger *zap.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		url := gotilsstrconv.B2S(ctx.URI().FullURI())

		result, ok, err := list.Match(url, "")
		if err != nil {
			logger.Warn("match error", zap.String("url", url), zap.Error(err))
			ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
			return
		}
		if !ok {
			ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
			return
		}

		body := bytebufferpool.Get()
		defer bytebufferpool.Put(body)

		payload, _ := result.Value.(string)
		body.WriteString(payload)
		for component, cm := range result.Match.Components {
			for name, value := range cm.Groups {
				body.WriteString("\n")
				body.WriteString(component.String())
				body.WriteString(".")
				body.WriteString(name)
				body.WriteString("=")
				body.WriteString(value)
			}
		}

		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBody(body.Bytes())
	}
}
