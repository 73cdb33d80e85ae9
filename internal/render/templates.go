package render

// previewTemplate is an inline-styled fragment meant to be embedded in the wizard page.
const previewTemplate = `<div class="portfolio-preview" style="font-family: -apple-system, BlinkMacSystemFont, sans-serif; max-width: 800px; margin: 0 auto; padding: 2rem; background: white; border-radius: 8px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
  <header style="text-align: center; margin-bottom: 3rem; padding: 2rem; background: linear-gradient(135deg, {{.Palette.Primary}}, {{.Palette.Secondary}}); border-radius: 8px; color: white;">
    {{- if .Image}}
    <img src="{{.Image}}" alt="{{.Profile.FullName}}" style="width: 120px; height: 120px; border-radius: 50%; margin-bottom: 1rem; border: 4px solid white;">
    {{- end}}
    <h1 style="font-size: 2.5rem; margin-bottom: 0.5rem;">{{.Profile.FullName}}</h1>
    <p style="font-size: 1.2rem; opacity: 0.9;">{{.Profile.JobTitle}}</p>
    {{- if .Profile.Location}}
    <p style="opacity: 0.8;">{{.Profile.Location}}</p>
    {{- end}}
  </header>
  <section class="about" style="margin-bottom: 3rem;">
    <h2 style="color: {{.Palette.Primary}}; border-bottom: 2px solid {{.Palette.Primary}}; padding-bottom: 0.5rem; margin-bottom: 1rem;">About Me</h2>
    <p style="line-height: 1.6; color: #374151;">{{.Profile.Bio}}</p>
  </section>
  <section class="skills" style="margin-bottom: 3rem;">
    <h2 style="color: {{.Palette.Primary}}; border-bottom: 2px solid {{.Palette.Primary}}; padding-bottom: 0.5rem; margin-bottom: 1rem;">Skills</h2>
    <div style="display: flex; flex-wrap: wrap; gap: 0.5rem;">
      {{- range .Skills}}
      <span class="skill-tag" style="background: {{$.Palette.Primary}}; color: white; padding: 0.5rem 1rem; border-radius: 20px; font-size: 0.9rem;">{{.}}</span>
      {{- end}}
    </div>
  </section>
  {{- if .ShowProjects}}
  <section class="projects" style="margin-bottom: 3rem;">
    <h2 style="color: {{.Palette.Primary}}; border-bottom: 2px solid {{.Palette.Primary}}; padding-bottom: 0.5rem; margin-bottom: 1rem;">Projects</h2>
    {{- range .Projects}}
    <div class="project-card" style="background: #f8fafc; padding: 1.5rem; border-radius: 8px; margin-bottom: 1rem; border-left: 4px solid {{$.Palette.Primary}};">
      <h3 style="margin-bottom: 0.5rem; color: #1f2937;">{{.Name}}</h3>
      <p style="color: #6b7280; margin-bottom: 1rem;">{{.Desc}}</p>
      {{- if .URL}}
      <a href="{{.URL}}" style="color: {{$.Palette.Primary}}; text-decoration: none;">View Project →</a>
      {{- end}}
    </div>
    {{- end}}
  </section>
  {{- end}}
  <section class="contact" style="text-align: center; background: #f8fafc; padding: 2rem; border-radius: 8px;">
    <h2 style="color: {{.Palette.Primary}}; margin-bottom: 1rem;">Get In Touch</h2>
    <p style="color: #6b7280; margin-bottom: 1rem;">I'd love to hear from you!</p>
    <div style="display: flex; justify-content: center; gap: 1rem; flex-wrap: wrap;">
      <a href="mailto:{{.Profile.Email}}" style="color: {{.Palette.Primary}}; text-decoration: none; padding: 0.5rem 1rem; border: 1px solid {{.Palette.Primary}}; border-radius: 4px;">Email</a>
      {{- if .Profile.Phone}}
      <a href="tel:{{.Profile.Phone}}" style="color: {{.Palette.Primary}}; text-decoration: none; padding: 0.5rem 1rem; border: 1px solid {{.Palette.Primary}}; border-radius: 4px;">Phone</a>
      {{- end}}
      {{- if .Profile.Website}}
      <a href="{{.Profile.Website}}" style="color: {{.Palette.Primary}}; text-decoration: none; padding: 0.5rem 1rem; border: 1px solid {{.Palette.Primary}}; border-radius: 4px;">Website</a>
      {{- end}}
    </div>
  </section>
</div>
`

// documentTemplate is the standalone page used for download and deployment.
const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Profile.FullName}} - Portfolio</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }
    body { font-family: -apple-system, BlinkMacSystemFont, sans-serif; line-height: 1.6; color: #1f2937; background: #ffffff; }
    .container { max-width: 1000px; margin: 0 auto; padding: 2rem; }
    .header { text-align: center; margin-bottom: 4rem; padding: 3rem; background: linear-gradient(135deg, {{.Palette.Primary}}, {{.Palette.Secondary}}); border-radius: 12px; color: white; }
    .profile-img { width: 150px; height: 150px; border-radius: 50%; margin-bottom: 1.5rem; border: 4px solid white; object-fit: cover; }
    .name { font-size: 3rem; margin-bottom: 0.5rem; font-weight: 700; }
    .title { font-size: 1.3rem; opacity: 0.9; margin-bottom: 0.5rem; }
    .location { opacity: 0.8; }
    .section { margin-bottom: 4rem; }
    .section-title { color: {{.Palette.Primary}}; border-bottom: 3px solid {{.Palette.Primary}}; padding-bottom: 0.5rem; margin-bottom: 2rem; font-size: 2rem; font-weight: 600; }
    .skills-container { display: flex; flex-wrap: wrap; gap: 0.75rem; }
    .skill-tag { background: {{.Palette.Primary}}; color: white; padding: 0.75rem 1.25rem; border-radius: 25px; font-size: 0.95rem; font-weight: 500; }
    .project-card { background: #f8fafc; padding: 2rem; border-radius: 12px; margin-bottom: 1.5rem; border-left: 5px solid {{.Palette.Primary}}; transition: transform 0.2s ease; }
    .project-card:hover { transform: translateY(-2px); }
    .project-title { margin-bottom: 0.75rem; color: #1f2937; font-size: 1.3rem; font-weight: 600; }
    .project-desc { color: #6b7280; margin-bottom: 1.25rem; font-size: 1.05rem; }
    .project-link { color: {{.Palette.Primary}}; text-decoration: none; font-weight: 600; border-bottom: 2px solid transparent; transition: border-bottom 0.2s ease; }
    .project-link:hover { border-bottom-color: {{.Palette.Primary}}; }
    .contact-section { text-align: center; background: linear-gradient(135deg, #f8fafc, #e5e7eb); padding: 3rem; border-radius: 12px; }
    .contact-links { display: flex; justify-content: center; gap: 1.5rem; flex-wrap: wrap; margin-top: 2rem; }
    .contact-link { color: {{.Palette.Primary}}; text-decoration: none; padding: 0.75rem 1.5rem; border: 2px solid {{.Palette.Primary}}; border-radius: 8px; font-weight: 600; transition: all 0.3s ease; }
    .contact-link:hover { background: {{.Palette.Primary}}; color: white; transform: translateY(-2px); }
    @media (max-width: 768px) {
      .container { padding: 1rem; }
      .name { font-size: 2.5rem; }
      .title { font-size: 1.1rem; }
      .section-title { font-size: 1.5rem; }
      .contact-links { flex-direction: column; align-items: center; }
    }
  </style>
</head>
<body>
  <div class="container">
    <header class="header">
      {{- if .Image}}
      <img src="{{.Image}}" alt="{{.Profile.FullName}}" class="profile-img">
      {{- end}}
      <h1 class="name">{{.Profile.FullName}}</h1>
      <p class="title">{{.Profile.JobTitle}}</p>
      {{- if .Profile.Location}}
      <p class="location">{{.Profile.Location}}</p>
      {{- end}}
    </header>
    <section class="section about">
      <h2 class="section-title">About Me</h2>
      <p style="font-size: 1.1rem; line-height: 1.8;">{{.Profile.Bio}}</p>
    </section>
    <section class="section skills">
      <h2 class="section-title">Skills</h2>
      <div class="skills-container">
        {{- range .Skills}}
        <span class="skill-tag">{{.}}</span>
        {{- end}}
      </div>
    </section>
    {{- if .ShowProjects}}
    <section class="section projects">
      <h2 class="section-title">Projects</h2>
      {{- range .Projects}}
      <div class="project-card">
        <h3 class="project-title">{{.Name}}</h3>
        <p class="project-desc">{{.Desc}}</p>
        {{- if .URL}}
        <a href="{{.URL}}" class="project-link" target="_blank" rel="noopener">View Project →</a>
        {{- end}}
      </div>
      {{- end}}
    </section>
    {{- end}}
    <section class="contact-section">
      <h2 class="section-title">Get In Touch</h2>
      <p style="color: #6b7280; font-size: 1.1rem;">I'd love to hear from you! Let's connect and discuss opportunities.</p>
      <div class="contact-links">
        <a href="mailto:{{.Profile.Email}}" class="contact-link">📧 Email</a>
        {{- if .Profile.Phone}}
        <a href="tel:{{.Profile.Phone}}" class="contact-link">📞 Phone</a>
        {{- end}}
        {{- if .Profile.Website}}
        <a href="{{.Profile.Website}}" class="contact-link" target="_blank" rel="noopener">🌐 Website</a>
        {{- end}}
      </div>
    </section>
  </div>
</body>
</html>
`
