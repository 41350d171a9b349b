package printdoc

import "html/template"

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4; margin: 12mm; }
  * { box-sizing: border-box; }
  body { margin: 0; font-family: "Hiragino Kaku Gothic ProN", "Noto Sans JP", "Yu Gothic", sans-serif; font-size: 11pt; line-height: 1.7; color: #111; }
  .page { height: {{.PageHeight}}px; overflow: hidden; page-break-after: always; break-after: page; }
  .page:last-child { page-break-after: auto; break-after: auto; }
  .page-content { transform-origin: top left; }
  header { display: flex; justify-content: space-between; align-items: flex-end; border-bottom: 2px solid #333; padding-bottom: 4px; margin-bottom: 12px; }
  header h1 { font-size: 16pt; margin: 0; }
  header .section-label { font-size: 11pt; margin-left: 8px; color: #555; }
  header .fields span { margin-left: 16px; white-space: nowrap; }
  h3 { font-size: 12pt; margin: 14px 0 4px; border-left: 4px solid #333; padding-left: 6px; }
  @media screen { body { background: #eee; } .page { background: #fff; width: 210mm; margin: 16px auto; padding: 12mm; box-shadow: 0 1px 4px rgba(0,0,0,.2); height: auto; min-height: {{.PageHeight}}px; } }
</style>
</head>
<body>
{{range .Pages}}<div class="page">
<div class="page-content">
<header>
  <div><h1>{{$.Title}}<span class="section-label">{{.Label}}</span></h1></div>
  <div class="fields">{{if $.Date}}<span class="date">{{$.Date}}</span>{{end}}{{if $.StudentName}}<span class="student">氏名：{{$.StudentName}}</span>{{end}}{{if $.InstructorName}}<span class="instructor">担当：{{$.InstructorName}}</span>{{end}}</div>
</header>
<div class="body">{{.Body}}</div>
</div>
</div>
{{end}}<script>
(function () {
  var PAGE_HEIGHT = {{.PageHeight}};
  var autoPrint = {{.AutoPrint}};
  function fit() {
    var contents = document.querySelectorAll(".page-content");
    for (var i = 0; i < contents.length; i++) {
      var el = contents[i];
      el.style.transform = "";
      el.style.width = "";
      var h = el.scrollHeight;
      if (h > PAGE_HEIGHT) {
        var scale = PAGE_HEIGHT / h;
        el.style.transform = "scale(" + scale + ")";
        el.style.width = (100 / scale) + "%";
      }
    }
  }
  window.addEventListener("load", function () {
    fit();
    if (autoPrint) {
      window.print();
    }
  });
  window.addEventListener("beforeprint", fit);
})();
</script>
</body>
</html>
`))
