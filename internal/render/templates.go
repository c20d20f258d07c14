// internal/render/templates.go
// Document templates for the rendered pages. The layout carries the
// SEO head; content blocks are selected per page kind. The minified
// variant drops the social/meta extras and the inline style block.
package render

const layoutTmpl = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Meta.Title}}</title>
{{- if .Meta.Description}}
<meta name="description" content="{{.Meta.Description}}">
{{- end}}
{{- if .Meta.Robots}}
<meta name="robots" content="{{.Meta.Robots}}">
{{- end}}
{{- if .Meta.Canonical}}
<link rel="canonical" href="{{.Meta.Canonical}}">
{{- end}}
{{- if not .Site.Minified}}
<meta property="og:site_name" content="{{.Site.Name}}">
<meta property="og:title" content="{{.Meta.Title}}">
{{- if .Meta.Description}}
<meta property="og:description" content="{{.Meta.Description}}">
{{- end}}
<meta property="og:type" content="{{.Meta.OGType}}">
{{- if .Meta.Canonical}}
<meta property="og:url" content="{{.Meta.Canonical}}">
{{- end}}
{{- if .Meta.Image}}
<meta property="og:image" content="{{.Meta.Image}}">
{{- end}}
<meta name="twitter:card" content="{{if .Meta.Image}}summary_large_image{{else}}summary{{end}}">
<meta name="twitter:title" content="{{.Meta.Title}}">
{{- if .Meta.Image}}
<meta name="twitter:image" content="{{.Meta.Image}}">
{{- end}}
{{- if .StructuredData}}
<script type="application/ld+json">{{.StructuredData}}</script>
{{- end}}
<style>
body{margin:0;font-family:system-ui,sans-serif;background:#111;color:#eee}
a{color:inherit;text-decoration:none}
header{display:flex;align-items:center;gap:12px;padding:10px 16px;background:#1a1a1a}
header img{height:32px}
header form{margin-left:auto}
header input{padding:6px 10px;border-radius:4px;border:1px solid #333;background:#222;color:#eee}
main{max-width:1080px;margin:0 auto;padding:16px}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(220px,1fr));gap:14px}
.card{background:#1a1a1a;border-radius:6px;overflow:hidden}
.card .thumb{position:relative;aspect-ratio:16/9;background:#000}
.card .thumb img{width:100%;height:100%;object-fit:cover}
.card .dur{position:absolute;right:6px;bottom:6px;background:rgba(0,0,0,.8);padding:1px 5px;border-radius:3px;font-size:12px}
.card .t{padding:8px;font-size:14px;line-height:1.3;max-height:2.6em;overflow:hidden}
.card .v{padding:0 8px 8px;color:#999;font-size:12px}
.player{aspect-ratio:16/9;background:#000;margin-bottom:12px}
.player iframe{width:100%;height:100%;border:0}
.pager{display:flex;justify-content:center;gap:16px;padding:20px 0}
.pager a{background:#1a1a1a;padding:8px 16px;border-radius:4px}
.tags a{display:inline-block;background:#222;border-radius:3px;padding:2px 8px;margin:2px;font-size:12px}
footer{padding:24px 16px;color:#666;text-align:center;font-size:13px}
</style>
{{- end}}
</head>
<body>
<header>
<a href="/"><img src="{{.Site.Logo}}" alt="{{.Site.Name}}"></a>
<a href="/"><strong>{{.Site.Name}}</strong></a>
<form action="/f/" method="get"><input type="search" name="q" placeholder="Cari video..." value="{{.Query}}"></form>
</header>
<main>
{{.Body}}
</main>
<footer>&copy; {{.Site.Name}}</footer>
</body>
</html>
`

const cardTmpl = `{{define "card"}}<a class="card" href="/e/{{.ID}}">
<div class="thumb">{{if .CardImage}}<img src="{{.CardImage}}" alt="{{.Title}}" loading="lazy">{{end}}{{if .DurationLabel}}<span class="dur">{{.DurationLabel}}</span>{{end}}</div>
<div class="t">{{.Title}}</div>
<div class="v">{{.ViewsLabel}} views</div>
</a>{{end}}`

const listingTmpl = `{{define "listing"}}<h1>{{.Heading}}</h1>
<div class="grid">
{{- range .Videos}}
{{template "card" .}}
{{- end}}
</div>
<nav class="pager">
{{- if .PrevPath}}<a href="{{.PrevPath}}" rel="prev">&laquo; Sebelumnya</a>{{end}}
{{- if .NextPath}}<a href="{{.NextPath}}" rel="next">Berikutnya &raquo;</a>{{end}}
</nav>{{end}}`

const detailTmpl = `{{define "detail"}}<article>
<div class="player">{{if .Video.PlaybackURL}}<iframe src="{{.Video.PlaybackURL}}" allowfullscreen loading="lazy"></iframe>{{else if .Video.PosterImage}}<img src="{{.Video.PosterImage}}" alt="{{.Video.Title}}" style="width:100%;height:100%;object-fit:cover">{{end}}</div>
<h1>{{.Video.Title}}</h1>
<p class="v">{{.Video.ViewsLabel}} views{{if .Video.DurationLabel}} &middot; {{.Video.DurationLabel}}{{end}}{{if .Video.Size}} &middot; {{.Video.Size}}{{end}}</p>
{{- if .Video.Description}}
<p>{{.Video.Description}}</p>
{{- end}}
{{- if .Video.Download}}
<p><a href="{{.Video.Download}}" rel="nofollow">Download</a></p>
{{- end}}
{{- if .Video.Tags}}
<p class="tags">{{range .Video.Tags}}<a href="/f/{{. | slug}}">{{.}}</a>{{end}}</p>
{{- end}}
</article>
{{- if .Related}}
<section>
<h2>Video Terkait</h2>
<div class="grid">
{{- range .Related}}
{{template "card" .}}
{{- end}}
</div>
</section>
{{- end}}{{end}}`

const searchTmpl = `{{define "search"}}<h1>{{.Heading}}</h1>
{{- if .Videos}}
<div class="grid">
{{- range .Videos}}
{{template "card" .}}
{{- end}}
</div>
{{- else}}
<p>{{.EmptyMessage}}</p>
{{- end}}{{end}}`

const notFoundTmpl = `{{define "notfound"}}<h1>404</h1>
<p>Video atau halaman yang kamu cari tidak ditemukan.</p>
<p><a href="/">Kembali ke beranda</a></p>{{end}}`
