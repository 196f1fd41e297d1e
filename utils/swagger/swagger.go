package swagger

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SwaggerConfig struct {
	Title         string
	SwaggerDocURL string
	AuthURL       string // admin login endpoint; the login form is hidden when empty
}

const swaggerHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.css" />
    <style>
        body { margin: 0; background: #fafafa; }
        #admin-login { display: flex; gap: 8px; align-items: center; padding: 12px 20px; background: #1f2937; color: #f9fafb; font-family: sans-serif; font-size: 13px; }
        #admin-login input { padding: 6px 8px; border-radius: 4px; border: 1px solid #9ca3af; }
        #admin-login button { padding: 6px 14px; border: none; border-radius: 4px; background: #4990e2; color: #fff; cursor: pointer; }
        #admin-login button:disabled { background: #6b7280; cursor: not-allowed; }
    </style>
</head>
<body data-login="{{.AuthURL}}" data-spec="{{.SwaggerDocURL}}">
    {{if .AuthURL}}
    <div id="admin-login">
        <strong>Admin</strong>
        <input type="text" id="login-username" placeholder="Username" />
        <input type="password" id="login-password" placeholder="Password" />
        <button id="login-button" onclick="performAuthentication()">Login</button>
        <span id="login-status"></span>
    </div>
    {{end}}
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.js" charset="UTF-8"></script>
    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-standalone-preset.js" charset="UTF-8"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: document.body.dataset.spec,
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [SwaggerUIBundle.presets.apis, SwaggerUIStandalonePreset],
                layout: "StandaloneLayout",
                docExpansion: "list",
                validatorUrl: null,
                persistAuthorization: true
            });
        };

        window.performAuthentication = async function() {
            const username = document.getElementById('login-username').value.trim();
            const password = document.getElementById('login-password').value;
            const button = document.getElementById('login-button');
            const status = document.getElementById('login-status');
            if (!username || !password) {
                status.textContent = 'Enter username and password';
                return;
            }

            button.disabled = true;
            try {
                const response = await fetch(document.body.dataset.login, {
                    method: 'POST',
                    headers: { 'Content-Type': 'application/json' },
                    body: JSON.stringify({ username: username, password: password })
                });
                const body = await response.json();
                if (!response.ok || body.error) {
                    throw new Error(body.message || 'Authentication failed');
                }
                window.ui.preauthorizeApiKey('BearerAuth', 'Bearer ' + body.data.token);
                status.textContent = 'Authorized';
            } catch (error) {
                status.textContent = error.message;
            } finally {
                button.disabled = false;
            }
        };
    </script>
</body>
</html>`

var swaggerTemplate = template.Must(template.New("swagger").Parse(swaggerHTML))

// ServeSwaggerUI serves the Swagger UI with an admin login bar
func ServeSwaggerUI(config SwaggerConfig) gin.HandlerFunc {
	if config.Title == "" {
		config.Title = "API Documentation"
	}
	if config.SwaggerDocURL == "" {
		config.SwaggerDocURL = "/swagger/doc.json"
	}

	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := swaggerTemplate.Execute(c.Writer, config); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Failed to render Swagger UI"})
		}
	}
}
