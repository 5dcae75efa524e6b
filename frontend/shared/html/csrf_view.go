package html

// CSRFFormScript stamps the cookie token into every POST form at submit
// time, so forms rendered before the cookie existed still carry it.
func CSRFFormScript() string {
	return `<script>
(function () {
  function readToken() {
    var match = document.cookie.match(/(?:^|;\s*)X-CSRF-Token=([^;]*)/);
    return match ? decodeURIComponent(match[1]) : "";
  }

  document.addEventListener("submit", function (event) {
    var form = event.target;
    if (!form || (form.getAttribute("method") || "GET").toUpperCase() !== "POST") return;
    if (form.querySelector("input[name='_csrf']")) return;

    var token = readToken();
    if (!token) return;

    var field = document.createElement("input");
    field.type = "hidden";
    field.name = "_csrf";
    field.value = token;
    form.appendChild(field);
  }, true);
})();
</script>`
}
