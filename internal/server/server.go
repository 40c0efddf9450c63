package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/franckalain/foodfacts/internal/barcode"
	"github.com/franckalain/foodfacts/internal/database"
	"github.com/franckalain/foodfacts/internal/lookup"
	"github.com/franckalain/foodfacts/internal/models"
	"github.com/franckalain/foodfacts/internal/vision"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, this should be more restrictive
	},
}

type Server struct {
	db      database.DB
	decoder vision.Decoder
	source  lookup.Source
	clients sync.Map
	debug   bool
}

func New(db database.DB, decoder vision.Decoder, source lookup.Source, debug bool) *Server {
	if debug {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Println("Debug logging enabled")
	}
	return &Server{
		db:      db,
		decoder: decoder,
		source:  source,
		debug:   debug,
	}
}

func (s *Server) Start(port, staticDir string) error {
	// Setup signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Setup HTTP routes
	http.HandleFunc("/ws", s.handleWebSocket)
	http.HandleFunc("/health", s.handleHealth)

	// Serve static files
	fs := http.FileServer(http.Dir(staticDir))
	http.Handle("/", fs)

	// Start server
	go func() {
		log.Printf("Starting server on port %s\n", port)
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down server...")
	return nil
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade failed:", err)
		return
	}
	defer conn.Close()

	// Store client connection
	clientID := uuid.New().String()
	s.clients.Store(clientID, conn)
	defer s.clients.Delete(clientID)

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Println("Error reading message:", err)
			break
		}

		// Parse message
		var msg map[string]any
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Println("Error parsing message:", err)
			continue
		}

		s.handleWebSocketMessage(conn, msg)
	}
}

func (s *Server) handleWebSocketMessage(conn *websocket.Conn, message map[string]any) {
	messageType, ok := message["type"].(string)
	if !ok {
		s.sendError(conn, "Invalid message format")
		return
	}

	data, _ := message["data"].(map[string]any)

	switch messageType {
	case "scan":
		s.handleScan(conn, data)
	case "lookup":
		s.handleLookup(conn, data)
	case "search":
		s.handleSearch(conn, data)
	case "get_history":
		s.handleGetHistory(conn)
	case "toggle_favorite":
		s.handleToggleFavorite(conn, data)
	case "get_favorites":
		s.handleGetFavorites(conn)
	case "submit_review":
		s.handleSubmitReview(conn, data)
	case "get_reviews":
		s.handleGetReviews(conn, data)
	default:
		s.sendError(conn, "Unknown message type")
	}
}

// handleScan decodes a barcode off a product photo, then runs the same
// lookup path as a manual barcode entry.
func (s *Server) handleScan(conn *websocket.Conn, data map[string]any) {
	imageStr, ok := data["image"].(string)
	if !ok {
		s.sendError(conn, "Invalid image data")
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(imageStr)
	if err != nil {
		log.Printf("Error decoding image: %v", err)
		s.sendError(conn, "Invalid image format")
		return
	}

	digits, err := s.decoder.DecodeBarcode(context.Background(), imageData)
	if err != nil {
		log.Printf("Error reading barcode from image: %v", err)
		s.recordScan(conn, "", "image", "failed", "could not read a barcode from the image")
		s.sendError(conn, "Could not read a barcode from the image")
		return
	}

	candidate, ok := barcode.Extract(digits)
	if !ok {
		log.Printf("No valid barcode in decoded digits %q", digits)
		s.recordScan(conn, barcode.Normalize(digits), "image", "failed", "no valid barcode in image")
		s.sendError(conn, "No valid barcode found in the image")
		return
	}

	log.Printf("Decoded %s barcode %s from image", candidate.Format, candidate.Code)
	s.lookupProduct(conn, candidate.Code, "image")
}

// handleLookup serves a manually entered barcode.
func (s *Server) handleLookup(conn *websocket.Conn, data map[string]any) {
	raw, ok := data["barcode"].(string)
	if !ok {
		s.sendError(conn, "Invalid barcode")
		return
	}

	if !barcode.Validate(raw) {
		s.recordScan(conn, barcode.Normalize(raw), "manual", "failed", "invalid barcode")
		s.sendError(conn, "Invalid barcode")
		return
	}

	s.lookupProduct(conn, barcode.Normalize(raw), "manual")
}

// lookupProduct is the shared tail of scan and lookup: cached product
// if we have one, otherwise the provider chain, then enrichment and
// persistence.
func (s *Server) lookupProduct(conn *websocket.Conn, code, method string) {
	ctx := context.Background()

	product, err := s.db.GetProduct(ctx, code)
	if err != nil {
		log.Printf("Error reading product cache: %v", err)
		s.sendError(conn, "Failed to look up product")
		return
	}

	if product == nil {
		product, err = s.source.Lookup(ctx, code)
		if errors.Is(err, lookup.ErrNotFound) {
			s.recordScan(conn, code, method, "failed", "product not found")
			s.sendError(conn, "Product not found")
			return
		}
		if err != nil {
			log.Printf("Error looking up %s: %v", code, err)
			s.sendError(conn, "Failed to look up product")
			return
		}

		EnrichProduct(product)

		if err := s.db.SaveProduct(ctx, product); err != nil {
			log.Printf("Error saving product: %v", err)
			s.sendError(conn, "Failed to save product")
			return
		}
	}

	s.recordScan(conn, code, method, "completed", "")
	s.sendMessage(conn, "product", NewProductView(product))
}

// recordScan appends to the scan history; failures here are logged but
// never block the response.
func (s *Server) recordScan(conn *websocket.Conn, code, method, status, errMsg string) {
	scan := &models.ScanRecord{
		ID:      uuid.New().String(),
		Barcode: code,
		Method:  method,
		Status:  status,
		Error:   errMsg,
	}
	if err := s.db.SaveScan(context.Background(), scan); err != nil {
		log.Printf("Error saving scan record: %v", err)
	}
}

func (s *Server) handleSearch(conn *websocket.Conn, data map[string]any) {
	query, ok := data["query"].(string)
	if !ok || query == "" {
		s.sendError(conn, "Invalid search query")
		return
	}

	products, err := s.db.SearchProducts(context.Background(), query, 20)
	if err != nil {
		log.Printf("Error searching products: %v", err)
		s.sendError(conn, "Search failed")
		return
	}

	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	s.sendMessage(conn, "search_results", map[string]any{
		"query": query,
		"items": views,
	})
}

func (s *Server) handleGetHistory(conn *websocket.Conn) {
	scans, err := s.db.RecentScans(context.Background(), 20)
	if err != nil {
		log.Printf("Error retrieving history: %v", err)
		s.sendError(conn, "Failed to retrieve history")
		return
	}

	s.sendMessage(conn, "history", map[string]any{"items": scans})
}

func (s *Server) handleToggleFavorite(conn *websocket.Conn, data map[string]any) {
	code, ok := data["barcode"].(string)
	if !ok || code == "" {
		s.sendError(conn, "Invalid barcode")
		return
	}

	favorite, err := s.db.ToggleFavorite(context.Background(), code)
	if err != nil {
		log.Printf("Error toggling favorite: %v", err)
		s.sendError(conn, "Failed to update favorites")
		return
	}

	s.sendMessage(conn, "favorite_toggled", map[string]any{
		"barcode":  code,
		"favorite": favorite,
	})
}

func (s *Server) handleGetFavorites(conn *websocket.Conn) {
	products, err := s.db.Favorites(context.Background())
	if err != nil {
		log.Printf("Error retrieving favorites: %v", err)
		s.sendError(conn, "Failed to retrieve favorites")
		return
	}

	views := make([]*ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, NewProductView(p))
	}
	s.sendMessage(conn, "favorites", map[string]any{"items": views})
}

func (s *Server) handleSubmitReview(conn *websocket.Conn, data map[string]any) {
	code, _ := data["barcode"].(string)
	author, _ := data["author"].(string)
	text, _ := data["text"].(string)
	rating, ratingOK := data["rating"].(float64)

	if code == "" || author == "" {
		s.sendError(conn, "Review needs a barcode and an author")
		return
	}
	if !ratingOK || rating < 1 || rating > 5 || rating != float64(int(rating)) {
		s.sendError(conn, "Rating must be a whole number from 1 to 5")
		return
	}

	review := &models.Review{
		ID:      uuid.New().String(),
		Barcode: code,
		Author:  author,
		Rating:  int(rating),
		Text:    text,
	}
	if err := s.db.SaveReview(context.Background(), review); err != nil {
		log.Printf("Error saving review: %v", err)
		s.sendError(conn, "Failed to save review")
		return
	}

	s.sendMessage(conn, "review_saved", review)
}

func (s *Server) handleGetReviews(conn *websocket.Conn, data map[string]any) {
	code, ok := data["barcode"].(string)
	if !ok || code == "" {
		s.sendError(conn, "Invalid barcode")
		return
	}

	reviews, err := s.db.ReviewsFor(context.Background(), code)
	if err != nil {
		log.Printf("Error retrieving reviews: %v", err)
		s.sendError(conn, "Failed to retrieve reviews")
		return
	}

	s.sendMessage(conn, "reviews", map[string]any{
		"barcode": code,
		"items":   reviews,
	})
}

func (s *Server) sendMessage(conn *websocket.Conn, messageType string, data any) {
	msg := map[string]any{
		"type": messageType,
		"data": data,
	}

	if s.debug {
		log.Printf("Sending message to client - Type: %s", messageType)
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Println("Error sending message:", err)
	}
}

func (s *Server) sendError(conn *websocket.Conn, message string) {
	msg := map[string]any{
		"type":    "error",
		"message": message,
	}

	if err := conn.WriteJSON(msg); err != nil {
		log.Println("Error sending error message:", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
