package constant

const (
	// UploadFirstMessage is returned instead of an answer when the queried document does not exist.
	UploadFirstMessage = "Please upload a document first."

	UploadSuccessMessage = "File uploaded successfully!"

	AppName        = "Chat with PDFs"
	AppVersion     = "0.1.0"
	AppDescription = "A simple chatbot that can answer questions about a PDF file."

	PDFExtension = ".pdf"
)
