package browser

// Functions evaluated in the page with this bound to the element (or window). They are written
// as function expressions because CDP's callFunctionOn needs them that way.
const (
	ScriptDocumentElement = `function () { return document.documentElement }`

	ScriptProperties = `function () {
		const attributes = []
		for (const a of this.attributes) {
			attributes.push([a.name, a.value])
		}

		const dataset = []
		if (this.dataset) {
			for (const key in this.dataset) {
				dataset.push([key, this.dataset[key]])
			}
		}

		return {
			nodeName: this.nodeName,
			id: this.id || '',
			className: this.getAttribute('class') || '',
			textContent: this.textContent || '',
			attributes,
			dataset
		}
	}`

	ScriptProperty = `function (name) {
		const value = this[name]
		return typeof value === 'string' ? value : null
	}`

	ScriptChildCount = `function () { return this.children.length }`

	ScriptChild = `function (i) { return this.children[i] }`

	ScriptComputedStyle = `function (pseudo) {
		const style = window.getComputedStyle(this, pseudo)
		const entries = []
		for (const key in style) {
			const value = style[key]
			const kind = value === null ? 'null' : typeof value
			entries.push([key, kind === 'string' || kind === 'number' ? String(value) : '', kind])
		}
		return entries
	}`

	ScriptBoundingClientRect = `function () { return this.getBoundingClientRect().toJSON() }`

	ScriptScrollOffset = `function () {
		const body = document.body || {}
		return {
			documentTop: document.documentElement.scrollTop,
			documentLeft: document.documentElement.scrollLeft,
			bodyTop: body.scrollTop || 0,
			bodyLeft: body.scrollLeft || 0
		}
	}`

	ScriptCreateImage = `function (src) {
		const img = new Image()
		img.src = src
		return img
	}`

	ScriptAttachImage = `function () { document.body.appendChild(this) }`

	ScriptDetachImage = `function () { document.body.removeChild(this) }`

	// ScriptRasterize draws without waiting for the image to load.
	ScriptRasterize = `function () {
		if (!(this instanceof HTMLImageElement)) {
			throw new TypeError('element is not an image')
		}
		const canvas = document.createElement('canvas')
		canvas.width = this.naturalWidth
		canvas.height = this.naturalHeight
		const ctx = canvas.getContext('2d')
		ctx.drawImage(this, 0, 0)
		return canvas.toDataURL('image/png')
	}`

	ScriptLocation = `function () { return location.href }`
)
